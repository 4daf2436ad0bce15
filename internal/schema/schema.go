// Package schema defines the portfolio content records, the fields a client
// may supply when creating them, and the validation shared by the server and
// the Go client.
package schema

import "time"

// Kind names one of the stored entity collections.
type Kind string

const (
	KindSkill         Kind = "skill"
	KindProject       Kind = "project"
	KindEducation     Kind = "education"
	KindCertification Kind = "certification"
	KindPublication   Kind = "publication"
	KindMessage       Kind = "message"
)

// ContentKinds are the kinds populated by seeding, in seeding order.
var ContentKinds = []Kind{KindSkill, KindProject, KindPublication, KindEducation, KindCertification}

// Skill categories accepted by InsertSkill.
const (
	CategoryLanguages = "Languages"
	CategoryAIML      = "AI/ML"
	CategoryBackend   = "Backend"
	CategoryCloud     = "Cloud"
	CategoryTools     = "Tools"
)

// DefaultProficiency is stored when a skill is created without one.
const DefaultProficiency = 100

type Skill struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Proficiency int    `json:"proficiency" validate:"min=0,max=100"`
}

type InsertSkill struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=Languages AI/ML Backend Cloud Tools"`
	Proficiency *int   `json:"proficiency,omitempty" validate:"omitempty,min=0,max=100"`
}

type Project struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Technologies []string `json:"technologies"`
	Link         *string  `json:"link"`
	ImageURL     *string  `json:"imageUrl"`
}

type InsertProject struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Technologies []string `json:"technologies,omitempty" validate:"omitempty,dive,required"`
	Link         *string  `json:"link,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
}

type Education struct {
	ID          int64   `json:"id"`
	Degree      string  `json:"degree" validate:"required"`
	Institution string  `json:"institution" validate:"required"`
	Year        string  `json:"year" validate:"required"`
	Description *string `json:"description"`
}

type InsertEducation struct {
	Degree      string  `json:"degree" validate:"required"`
	Institution string  `json:"institution" validate:"required"`
	Year        string  `json:"year" validate:"required"`
	Description *string `json:"description,omitempty"`
}

type Certification struct {
	ID     int64  `json:"id"`
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer" validate:"required"`
	Date   string `json:"date" validate:"required"`
}

type InsertCertification struct {
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer" validate:"required"`
	Date   string `json:"date" validate:"required"`
}

type Publication struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title" validate:"required"`
	Publisher   string  `json:"publisher" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Link        *string `json:"link"`
}

type InsertPublication struct {
	Title       string  `json:"title" validate:"required"`
	Publisher   string  `json:"publisher" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Link        *string `json:"link,omitempty"`
}

// Message is a contact form submission. It is write-only through the API.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Message   string    `json:"message" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

// InsertMessage is the body accepted by the contact endpoint.
type InsertMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// String returns a pointer to s, for the optional text fields.
func String(s string) *string { return &s }

// Int returns a pointer to n.
func Int(n int) *int { return &n }
