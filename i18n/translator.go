package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "expected").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "fr":
		switch code {
		case "invalid_type":
			return "type de valeur incorrect"
		case "unknown_field":
			return "champ inconnu"
		case "duplicate_field":
			return "champ en double"
		case "too_small":
			return "valeur trop petite"
		case "too_big":
			return "valeur trop grande"
		case "failed_validator":
			return "valeur invalide"
		case "invalid_enum":
			return "valeur hors ensemble autorisé"
		case "unexpected_character":
			return "caractère inattendu"
		case "unexpected_eof":
			return "fin de fichier inattendue"
		case "missing_required":
			return "champ obligatoire introuvable"
		case "invalid_format":
			return "format invalide"
		case "parse_error":
			return "erreur d'analyse"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid value type"
		case "unknown_field":
			return "unknown field"
		case "duplicate_field":
			return "field already present"
		case "too_small":
			return "value too small"
		case "too_big":
			return "value too large"
		case "failed_validator":
			return "invalid value"
		case "invalid_enum":
			return "value not in allowed set"
		case "unexpected_character":
			return "unexpected character"
		case "unexpected_eof":
			return "unexpected end of input"
		case "missing_required":
			return "could not find required field"
		case "invalid_format":
			return "invalid format"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"fr").
func SetLanguage(lang string) {
	if lang != "fr" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
