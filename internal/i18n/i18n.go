// Package i18n holds the static EN/FR UI string trees served to the
// presentation layer. Strings are grouped per page section; the whole tree
// for one language ships in a single response so the client never mixes
// languages mid-page.
package i18n

import "strings"

// Translation is the full UI string tree for one language.
type Translation struct {
	Nav        Nav        `json:"nav"`
	Home       Home       `json:"home"`
	Contact    Contact    `json:"contact"`
	Properties Properties `json:"properties"`
	Footer     Footer     `json:"footer"`
}

type Nav struct {
	Home        string `json:"home"`
	About       string `json:"about"`
	Services    string `json:"services"`
	Properties  string `json:"properties"`
	News        string `json:"news"`
	Contact     string `json:"contact"`
	Dashboard   string `json:"dashboard"`
	SignIn      string `json:"sign_in"`
	SignOut     string `json:"sign_out"`
}

type Home struct {
	Tagline       string `json:"tagline"`
	IntroHeading  string `json:"intro_heading"`
	ExploreButton string `json:"explore_button"`
}

type Contact struct {
	Heading      string `json:"heading"`
	NameLabel    string `json:"name_label"`
	EmailLabel   string `json:"email_label"`
	PhoneLabel   string `json:"phone_label"`
	MessageLabel string `json:"message_label"`
	SubmitButton string `json:"submit_button"`
	SuccessNote  string `json:"success_note"`
	FailureNote  string `json:"failure_note"`
}

type Properties struct {
	Heading       string `json:"heading"`
	SearchLabel   string `json:"search_label"`
	CityLabel     string `json:"city_label"`
	TypeLabel     string `json:"type_label"`
	PriceLabel    string `json:"price_label"`
	BedroomsLabel string `json:"bedrooms_label"`
	InquireButton string `json:"inquire_button"`
	EmptyNote     string `json:"empty_note"`
}

type Footer struct {
	LegalNote     string `json:"legal_note"`
	CookieConsent string `json:"cookie_consent"`
}

var translations = map[string]Translation{
	"en": {
		Nav: Nav{
			Home: "Home", About: "About", Services: "Services", Properties: "Properties",
			News: "News", Contact: "Contact", Dashboard: "Dashboard",
			SignIn: "Sign in", SignOut: "Sign out",
		},
		Home: Home{
			Tagline:       "Exceptional properties, effortless living",
			IntroHeading:  "Your concierge on the Riviera",
			ExploreButton: "Explore our portfolio",
		},
		Contact: Contact{
			Heading: "Speak with a concierge", NameLabel: "Full name", EmailLabel: "Email",
			PhoneLabel: "Phone (optional)", MessageLabel: "Your message", SubmitButton: "Send",
			SuccessNote: "Thank you — we will be in touch shortly.",
			FailureNote: "Something went wrong. Please try again.",
		},
		Properties: Properties{
			Heading: "Properties", SearchLabel: "Search", CityLabel: "City", TypeLabel: "Type",
			PriceLabel: "Price", BedroomsLabel: "Bedrooms", InquireButton: "Inquire",
			EmptyNote: "No properties match your search.",
		},
		Footer: Footer{
			LegalNote:     "All listings subject to availability.",
			CookieConsent: "We use cookies to improve your experience.",
		},
	},
	"fr": {
		Nav: Nav{
			Home: "Accueil", About: "À propos", Services: "Services", Properties: "Propriétés",
			News: "Actualités", Contact: "Contact", Dashboard: "Tableau de bord",
			SignIn: "Connexion", SignOut: "Déconnexion",
		},
		Home: Home{
			Tagline:       "Des propriétés d'exception, une vie sans effort",
			IntroHeading:  "Votre conciergerie sur la Riviera",
			ExploreButton: "Découvrir notre portefeuille",
		},
		Contact: Contact{
			Heading: "Parler à un concierge", NameLabel: "Nom complet", EmailLabel: "Email",
			PhoneLabel: "Téléphone (facultatif)", MessageLabel: "Votre message", SubmitButton: "Envoyer",
			SuccessNote: "Merci — nous vous contacterons très prochainement.",
			FailureNote: "Une erreur est survenue. Veuillez réessayer.",
		},
		Properties: Properties{
			Heading: "Propriétés", SearchLabel: "Recherche", CityLabel: "Ville", TypeLabel: "Type",
			PriceLabel: "Prix", BedroomsLabel: "Chambres", InquireButton: "Demande",
			EmptyNote: "Aucune propriété ne correspond à votre recherche.",
		},
		Footer: Footer{
			LegalNote:     "Toutes les annonces sont soumises à disponibilité.",
			CookieConsent: "Nous utilisons des cookies pour améliorer votre expérience.",
		},
	},
}

// DefaultLanguage is served when the client expresses no preference.
const DefaultLanguage = "en"

// Lookup returns the string tree for a language tag. Tags are matched on
// their primary subtag ("fr-FR" resolves to "fr"); ok is false for unknown
// languages.
func Lookup(tag string) (Translation, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexByte(tag, '-'); i > 0 {
		tag = tag[:i]
	}
	t, ok := translations[tag]
	return t, ok
}

// Languages lists the supported language tags.
func Languages() []string {
	return []string{"en", "fr"}
}
