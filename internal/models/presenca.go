package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MarcacaoDiaria is one member's attendance mark for one calendar day.
// Data is always the start of the day in the configured zone.
type MarcacaoDiaria struct {
	Data     time.Time `bson:"data" json:"data"`
	Presente bool      `bson:"presente" json:"presente"`
}

// Presenca is the attendance record of a member. There is at most one record per
// member and at most one mark per calendar day inside it.
type Presenca struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	// IDMembro is a lookup key into membros, not an owning reference
	IDMembro string `bson:"idMembro" json:"idMembro"`
	// NomeMembro is copied when the record is created and never refreshed
	NomeMembro string           `bson:"nomeMembro" json:"nomeMembro"`
	Presencas  []MarcacaoDiaria `bson:"presencas" json:"presencas"`
}

// PresencaSubmissao is one item of an attendance batch
type PresencaSubmissao struct {
	IDMembro   string    `json:"idMembro" validate:"required"`
	NomeMembro string    `json:"nomeMembro" validate:"required"`
	Data       Timestamp `json:"data" validate:"required"`
	Presente   *bool     `json:"presente" validate:"required"`
}

// MarcarPresencaRequest is the body for marking a single member for today
type MarcarPresencaRequest struct {
	Presente *bool `json:"presente" validate:"required"`
}

// MarcarPresencaResponse is returned after marking a single member
type MarcarPresencaResponse struct {
	Message  string    `json:"message"`
	Presenca *Presenca `json:"presenca"`
}
