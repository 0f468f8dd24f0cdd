package dict

// Language is one of the dictionary's supported language codes.
type Language string

// Supported languages, in feed column order.
const (
	LangLat Language = "lat" // Latin
	LangIro Language = "iro" // Interromance
	LangPor Language = "por" // Portuguese
	LangSpa Language = "spa" // Spanish
	LangCat Language = "cat" // Catalan
	LangOcc Language = "occ" // Occitan
	LangFra Language = "fra" // French
	LangSrd Language = "srd" // Sardinian
	LangIta Language = "ita" // Italian
	LangRom Language = "rom" // Romanian
	LangEng Language = "eng" // English
	LangFol Language = "fol" // Francoprovençal
	LangFrk Language = "frk" // Franco-Romance
	LangSla Language = "sla" // Ladin
)

// languages lists every supported language in feed column order. The feed
// parser reads one text column per element, in this order, starting at the
// first language column.
var languages = []Language{
	LangLat, LangIro, LangPor, LangSpa, LangCat, LangOcc, LangFra,
	LangSrd, LangIta, LangRom, LangEng, LangFol, LangFrk, LangSla,
}

// Languages returns all supported languages in feed column order.
// The returned slice is a copy and may be modified by the caller.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// NumLanguages is the number of supported languages.
func NumLanguages() int { return len(languages) }

// ParseLanguage maps a language code string to its Language value.
// Returns false for unknown codes.
func ParseLanguage(s string) (Language, bool) {
	for _, l := range languages {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}
