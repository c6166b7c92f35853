package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// Category maps a name to an ordered list of uppercase keywords. A category
// with no keywords is never auto-matched and can only be assigned manually.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategorySet is an insertion-ordered collection of categories. The order is
// significant: keyword tie-breaking picks the first-encountered category
// among equal-length keywords, so iteration must be stable.
//
// It serializes as a JSON object {name: [keywords]} preserving document
// order, matching the persisted state layout.
type CategorySet []Category

// Get returns the keywords for a category name.
func (s CategorySet) Get(name string) ([]string, bool) {
	for _, c := range s {
		if c.Name == name {
			return c.Keywords, true
		}
	}
	return nil, false
}

// Names returns the category names in insertion order.
func (s CategorySet) Names() []string {
	names := make([]string, 0, len(s))
	for _, c := range s {
		names = append(names, c.Name)
	}
	return names
}

// Upsert replaces the keywords of an existing category or appends a new one.
func (s CategorySet) Upsert(name string, keywords []string) CategorySet {
	for i, c := range s {
		if c.Name == name {
			s[i].Keywords = keywords
			return s
		}
	}
	return append(s, Category{Name: name, Keywords: keywords})
}

// Remove deletes a category by name.
func (s CategorySet) Remove(name string) CategorySet {
	for i, c := range s {
		if c.Name == name {
			return append(s[:i:i], s[i+1:]...)
		}
	}
	return s
}

// MarshalJSON writes the set as an ordered JSON object.
func (s CategorySet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		keywords := c.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		kw, err := json.Marshal(keywords)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(kw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object token by token so the document order of
// the keys is preserved, which encoding/json maps would lose.
func (s *CategorySet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected JSON object, got %v", tok)
	}

	var out CategorySet
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("categories: expected string key, got %v", keyTok)
		}
		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return fmt.Errorf("categories: keywords for %q: %w", name, err)
		}
		out = append(out, Category{Name: name, Keywords: keywords})
	}
	*s = out
	return nil
}

// DefaultCategories returns the built-in Italian category keyword rules.
func DefaultCategories() CategorySet {
	return CategorySet{
		{Name: "Spesa alimentare", Keywords: []string{"CONAD", "COOP", "ESSELUNGA", "LIDL", "EUROSPIN", "CARREFOUR", "PAM", "PENNY", "MD ", "ALDI", "SUPERMERCATO", "ALIMENTARI", "DESPAR"}},
		{Name: "Ristorazione", Keywords: []string{"RISTORANTE", "PIZZERIA", "BAR ", "CAFE", "MCDONALD", "BURGER", "SUSHI", "PUB", "TAVOLA CALDA", "TRATTORIA"}},
		{Name: "Trasporti", Keywords: []string{"TRENITALIA", "ITALO", "ATM", "BENZINA", "CARBURANTE", "ENI", "Q8", "TAMOIL", "IP ", "AUTOSTRAD", "TELEPASS", "UBER", "TAXI", "BUS"}},
		{Name: "Abbonamenti", Keywords: []string{"NETFLIX", "SPOTIFY", "AMAZON PRIME", "DISNEY", "DAZN", "NOW TV", "APPLE", "GOOGLE STORAGE", "PLAYSTATION", "XBOX"}},
		{Name: "Utenze", Keywords: []string{"ENEL", "ENI GAS", "A2A", "HERA", "IREN", "SORGENIA", "FASTWEB", "TIM", "VODAFONE", "WINDTRE", "ILIAD", "TARI", "ACQUA"}},
		{Name: "Salute", Keywords: []string{"FARMACIA", "PARAFARMACIA", "MEDICO", "DENTISTA", "OCULISTA", "OTTICO", "OSPEDALE", "ASL", "TICKET"}},
		{Name: "Shopping", Keywords: []string{"ZALANDO", "AMAZON", "EBAY", "ZARA", "H&M", "DECATHLON", "IKEA", "MEDIAWORLD", "UNIEURO", "FELTRINELLI"}},
		{Name: "Casa", Keywords: []string{"LEROY MERLIN", "BRICO", "OBI", "CASTORAMA", "MONDO CONVENIENZA", "MAISON"}},
		{Name: "Stipendio", Keywords: []string{"STIPENDIO", "SALARY", "EMOLUMENTO", "COMPENSO", "ACCREDITO"}},
		{Name: "Bonifici in entrata", Keywords: []string{"BONIFICO A VOSTRO FAVORE", "BONIF SEPA A VS FAVORE"}},
		{Name: "Commissioni", Keywords: []string{"COMMISSIONE", "CANONE", "SPESE CONTO", "IMPOSTA BOLLO"}},
	}
}
