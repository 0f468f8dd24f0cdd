package dict

// Entry is one dictionary record. ID is the primary key; SemID groups
// related entries (synonyms/cognates) into a semantic cluster. Per-language
// text fields are nil when the feed has no value for that language.
//
// Entry is a value type: copying the struct yields an independent record
// (the pointed-to strings are never mutated).
type Entry struct {
	ID        uint32  `json:"id"`
	SemID     *uint32 `json:"sem_id,omitempty"`
	Topic     *Topic  `json:"topic,omitempty"`
	Essential bool    `json:"essential"`
	Basic     bool    `json:"basic"`

	Lat *string `json:"lat,omitempty"`
	Iro *string `json:"iro,omitempty"`
	Por *string `json:"por,omitempty"`
	Spa *string `json:"spa,omitempty"`
	Cat *string `json:"cat,omitempty"`
	Occ *string `json:"occ,omitempty"`
	Fra *string `json:"fra,omitempty"`
	Srd *string `json:"srd,omitempty"`
	Ita *string `json:"ita,omitempty"`
	Rom *string `json:"rom,omitempty"`
	Eng *string `json:"eng,omitempty"`
	Fol *string `json:"fol,omitempty"`
	Frk *string `json:"frk,omitempty"`
	Sla *string `json:"sla,omitempty"`
}

// Text returns the entry's text in the given language, or nil if absent.
func (e *Entry) Text(lang Language) *string {
	switch lang {
	case LangLat:
		return e.Lat
	case LangIro:
		return e.Iro
	case LangPor:
		return e.Por
	case LangSpa:
		return e.Spa
	case LangCat:
		return e.Cat
	case LangOcc:
		return e.Occ
	case LangFra:
		return e.Fra
	case LangSrd:
		return e.Srd
	case LangIta:
		return e.Ita
	case LangRom:
		return e.Rom
	case LangEng:
		return e.Eng
	case LangFol:
		return e.Fol
	case LangFrk:
		return e.Frk
	case LangSla:
		return e.Sla
	}
	return nil
}

// SetText sets the entry's text for the given language. Used by the feed
// parser when converting raw rows; unknown languages are ignored.
func (e *Entry) SetText(lang Language, s string) {
	v := &s
	switch lang {
	case LangLat:
		e.Lat = v
	case LangIro:
		e.Iro = v
	case LangPor:
		e.Por = v
	case LangSpa:
		e.Spa = v
	case LangCat:
		e.Cat = v
	case LangOcc:
		e.Occ = v
	case LangFra:
		e.Fra = v
	case LangSrd:
		e.Srd = v
	case LangIta:
		e.Ita = v
	case LangRom:
		e.Rom = v
	case LangEng:
		e.Eng = v
	case LangFol:
		e.Fol = v
	case LangFrk:
		e.Frk = v
	case LangSla:
		e.Sla = v
	}
}
