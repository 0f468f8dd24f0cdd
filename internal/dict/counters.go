package dict

// Counters holds the aggregate record counts published in the feed's
// counter row: a grand total, the number of semantic clusters, and one
// count per language. They are provenance metadata straight from the feed —
// never re-derived from, or validated against, the parsed entry set.
type Counters struct {
	Total uint32 `json:"total"`
	Sem   uint32 `json:"sem"`
	Lat   uint32 `json:"lat"`
	Iro   uint32 `json:"iro"`
	Por   uint32 `json:"por"`
	Spa   uint32 `json:"spa"`
	Cat   uint32 `json:"cat"`
	Occ   uint32 `json:"occ"`
	Fra   uint32 `json:"fra"`
	Srd   uint32 `json:"srd"`
	Ita   uint32 `json:"ita"`
	Rom   uint32 `json:"rom"`
	Eng   uint32 `json:"eng"`
	Fol   uint32 `json:"fol"`
	Frk   uint32 `json:"frk"`
	Sla   uint32 `json:"sla"`
}

// ByLanguage returns the per-language count for lang.
func (c Counters) ByLanguage(lang Language) uint32 {
	switch lang {
	case LangLat:
		return c.Lat
	case LangIro:
		return c.Iro
	case LangPor:
		return c.Por
	case LangSpa:
		return c.Spa
	case LangCat:
		return c.Cat
	case LangOcc:
		return c.Occ
	case LangFra:
		return c.Fra
	case LangSrd:
		return c.Srd
	case LangIta:
		return c.Ita
	case LangRom:
		return c.Rom
	case LangEng:
		return c.Eng
	case LangFol:
		return c.Fol
	case LangFrk:
		return c.Frk
	case LangSla:
		return c.Sla
	}
	return 0
}

// SetByLanguage sets the per-language count for lang. Used by the feed
// parser when reading the counter row.
func (c *Counters) SetByLanguage(lang Language, n uint32) {
	switch lang {
	case LangLat:
		c.Lat = n
	case LangIro:
		c.Iro = n
	case LangPor:
		c.Por = n
	case LangSpa:
		c.Spa = n
	case LangCat:
		c.Cat = n
	case LangOcc:
		c.Occ = n
	case LangFra:
		c.Fra = n
	case LangSrd:
		c.Srd = n
	case LangIta:
		c.Ita = n
	case LangRom:
		c.Rom = n
	case LangEng:
		c.Eng = n
	case LangFol:
		c.Fol = n
	case LangFrk:
		c.Frk = n
	case LangSla:
		c.Sla = n
	}
}
