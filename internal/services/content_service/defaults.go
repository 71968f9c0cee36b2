package services

// Defaults maps language -> page -> section -> text. Lookups fall back to the
// source language when a translation of the default is missing.
type Defaults map[string]map[string]map[string]string

func (d Defaults) Lookup(page, section, language, sourceLanguage string) string {
	if text, ok := d[language][page][section]; ok {
		return text
	}
	return d[sourceLanguage][page][section]
}

// SiteDefaults seeds the marketing pages before an editor has touched them.
var SiteDefaults = Defaults{
	"en": {
		"home": {
			"hero_title":         "Automation that works while you sleep",
			"hero_subtitle":      "We build workflows, integrations and AI agents that take repetitive work off your team.",
			"hero_cta":           "Book a free call",
			"services_title":     "What we do",
			"testimonials_title": "What our clients say",
		},
		"about": {
			"title":   "About us",
			"mission": "We help small teams get more done with less busywork.",
			"story":   "Founded by engineers who were tired of copy-pasting between tools.",
		},
		"contact": {
			"title":    "Get in touch",
			"subtitle": "Tell us about your project and we will reply within one business day.",
		},
		"blog": {
			"title":    "Blog",
			"subtitle": "Notes on automation, integrations and AI.",
		},
	},
	"fr": {
		"home": {
			"hero_title": "Une automatisation qui travaille pendant votre sommeil",
			"hero_cta":   "Réservez un appel gratuit",
		},
		"contact": {
			"title": "Contactez-nous",
		},
	},
	"es": {
		"home": {
			"hero_title": "Automatización que trabaja mientras duermes",
			"hero_cta":   "Reserva una llamada gratuita",
		},
		"contact": {
			"title": "Contáctanos",
		},
	},
}
