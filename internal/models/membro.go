package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project values a member can belong to
const (
	ProjetoArcanjo    = "arcanjo"
	ProjetoAssistente = "assistente"
	ProjetoAtalaia    = "atalaia"
	ProjetoCultura    = "cultura"
	ProjetoEsporte    = "esporte"
	ProjetoHelpe      = "helpe"
	ProjetoMidia      = "midia"
	ProjetoUniforca   = "uniforca"
	ProjetoNenhum     = "nenhum"
)

// Projetos lists every valid project
var Projetos = []string{
	ProjetoArcanjo, ProjetoAssistente, ProjetoAtalaia, ProjetoCultura, ProjetoEsporte,
	ProjetoHelpe, ProjetoMidia, ProjetoUniforca, ProjetoNenhum,
}

// Member kinds
const (
	TipoMembroObreiro   = "obreiro"
	TipoMembroJovem     = "jovem"
	TipoMembroDiscipulo = "discipulo"
)

// TiposMembro lists every valid member kind
var TiposMembro = []string{TipoMembroObreiro, TipoMembroJovem, TipoMembroDiscipulo}

// Endereco is a member's postal address
type Endereco struct {
	CEP         string `bson:"cep,omitempty" json:"cep,omitempty" validate:"omitempty,cep"`
	Rua         string `bson:"rua,omitempty" json:"rua,omitempty"`
	Numero      string `bson:"numero,omitempty" json:"numero,omitempty"`
	Bairro      string `bson:"bairro,omitempty" json:"bairro,omitempty"`
	Cidade      string `bson:"cidade,omitempty" json:"cidade,omitempty"`
	Estado      string `bson:"estado,omitempty" json:"estado,omitempty" validate:"omitempty,uf"`
	Complemento string `bson:"complemento,omitempty" json:"complemento,omitempty"`
}

// Membro is a registered member as stored in the membros collection
type Membro struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Nome           string             `bson:"nome" json:"nome"`
	Email          string             `bson:"email" json:"email"`
	Telefone       string             `bson:"telefone" json:"telefone"`
	DataNascimento *time.Time         `bson:"dataNascimento,omitempty" json:"dataNascimento,omitempty"`
	Projeto        string             `bson:"projeto" json:"projeto"`
	Batizado       bool               `bson:"batizado" json:"batizado"`
	DataBatismo    *time.Time         `bson:"dataBatismo,omitempty" json:"dataBatismo,omitempty"`
	TipoMembro     string             `bson:"tipoMembro" json:"tipoMembro"`
	Endereco       *Endereco          `bson:"endereco,omitempty" json:"endereco,omitempty"`
}

// MembroInput is the request body for creating or updating a member. Its
// validate tags are the single declaration of the member constraints.
type MembroInput struct {
	Nome           string    `json:"nome" validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	Telefone       string    `json:"telefone" validate:"required,telefone"`
	DataNascimento Timestamp `json:"dataNascimento" validate:"notfuture"`
	Projeto        string    `json:"projeto" validate:"required,projeto"`
	Batizado       bool      `json:"batizado"`
	DataBatismo    Timestamp `json:"dataBatismo" validate:"required_if=Batizado true,notfuture"`
	TipoMembro     string    `json:"tipoMembro" validate:"required,tipomembro"`
	Endereco       *Endereco `json:"endereco" validate:"omitempty"`
}

// ToMembro builds the stored document. A member who is not baptized carries no baptism date.
func (in MembroInput) ToMembro() *Membro {
	m := &Membro{
		Nome:           in.Nome,
		Email:          in.Email,
		Telefone:       in.Telefone,
		DataNascimento: in.DataNascimento.Ptr(),
		Projeto:        in.Projeto,
		Batizado:       in.Batizado,
		TipoMembro:     in.TipoMembro,
		Endereco:       in.Endereco,
	}
	if in.Batizado {
		m.DataBatismo = in.DataBatismo.Ptr()
	}
	return m
}

// MembroInputFrom converts a stored member back into an input, used as the base for partial updates
func MembroInputFrom(m *Membro) MembroInput {
	in := MembroInput{
		Nome:           m.Nome,
		Email:          m.Email,
		Telefone:       m.Telefone,
		DataNascimento: TimestampFrom(m.DataNascimento),
		Projeto:        m.Projeto,
		Batizado:       m.Batizado,
		DataBatismo:    TimestampFrom(m.DataBatismo),
		TipoMembro:     m.TipoMembro,
	}
	if m.Endereco != nil {
		endereco := *m.Endereco
		in.Endereco = &endereco
	}
	return in
}

// MembroResponse wraps a single member with a status message
type MembroResponse struct {
	Message string  `json:"message"`
	Membro  *Membro `json:"membro"`
}

// MessageResponse is a body carrying only a message
type MessageResponse struct {
	Message string `json:"message"`
}
