// -----------------------------------------------------------------------------
// Person Model
// -----------------------------------------------------------------------------
// Rehberdeki bir kişiyi temsil eder. Veritabanı kolonları PascalCase
// (PersonId, FirstName ...), JSON alanları snake_case'dir.
//
// PersonMapper, sorgu ve procedure sonuçlarını Person'a çevirir. Mapper bir
// kere kurulur ve tüm goroutine'ler tarafından paylaşılır.
// -----------------------------------------------------------------------------

package models

import (
	"fmt"
	"strings"

	"github.com/biyonik/person-directory/pkg/database/rowmapper"
)

// Kolon adları.
const (
	ColPersonID  = "PersonId"
	ColFirstName = "FirstName"
	ColLastName  = "LastName"
	ColEmail     = "Email"
	ColPhones    = "Phones"
)

// Person, bir kişiyi temsil eder
type Person struct {
	PersonID  int    `json:"person_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phones    string `json:"phones,omitempty"` // virgülle ayrılmış liste
}

// PersonSummary, sadece ad ve soyad içeren hafif projeksiyon.
type PersonSummary struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PersonMapper, Person için paylaşılan row mapper.
var PersonMapper = rowmapper.New[Person](nil,
	rowmapper.Int(ColPersonID, func(p *Person, v int) { p.PersonID = v }),
	rowmapper.String(ColFirstName, func(p *Person, v string) { p.FirstName = v }),
	rowmapper.String(ColLastName, func(p *Person, v string) { p.LastName = v }),
	rowmapper.String(ColEmail, func(p *Person, v string) { p.Email = v }),
	rowmapper.String(ColPhones, func(p *Person, v string) { p.Phones = v }),
)

// FullName, ad ve soyadı birleştirir. Soyad yoksa sadece ad döner.
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Lean, kişinin ad/soyad projeksiyonunu döndürür.
func (p Person) Lean() PersonSummary {
	return PersonSummary{FirstName: p.FirstName, LastName: p.LastName}
}

// PhoneList, Phones alanını parçalar. Boş girdiler atlanır.
func (p Person) PhoneList() []string {
	var phones []string
	for _, phone := range strings.Split(p.Phones, ",") {
		if phone = strings.TrimSpace(phone); phone != "" {
			phones = append(phones, phone)
		}
	}
	return phones
}

// VCard, kişiyi vCard 3.0 metni olarak döndürür.
func (p Person) VCard() string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\r\nVERSION:3.0\r\n")
	fmt.Fprintf(&b, "N:%s;%s;;;\r\n", vcardEscape(p.LastName), vcardEscape(p.FirstName))
	fmt.Fprintf(&b, "FN:%s\r\n", vcardEscape(p.FullName()))
	if p.Email != "" {
		fmt.Fprintf(&b, "EMAIL;TYPE=INTERNET:%s\r\n", vcardEscape(p.Email))
	}
	for _, phone := range p.PhoneList() {
		fmt.Fprintf(&b, "TEL;TYPE=VOICE:%s\r\n", vcardEscape(phone))
	}
	b.WriteString("END:VCARD\r\n")
	return b.String()
}

var vcardReplacer = strings.NewReplacer(`\`, `\\`, ",", `\,`, ";", `\;`, "\n", `\n`)

func vcardEscape(s string) string {
	return vcardReplacer.Replace(s)
}

// LeanPersons, listeyi ad/soyad projeksiyonuna çevirir.
func LeanPersons(persons []Person) []PersonSummary {
	lean := make([]PersonSummary, len(persons))
	for i, p := range persons {
		lean[i] = p.Lean()
	}
	return lean
}
