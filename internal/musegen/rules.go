package musegen

import (
	"regexp"
	"strings"

	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

// KeywordRule associates a text pattern with the genres it suggests
type KeywordRule struct {
	Name    string
	Pattern *regexp.Regexp
	Genres  []string
}

// LanguageRule is a cultural cue. Every rule is evaluated; matches append their languages.
type LanguageRule struct {
	Name      string
	Match     func(sc models.SuggestionContext) bool
	Languages []string
}

// ArtistRule maps genre tags containing any keyword to an artist sub-pool category
type ArtistRule struct {
	Keywords []string
	Category string
}

// GenreRules returns the genre keyword table in priority order
func GenreRules() []KeywordRule {
	return []KeywordRule{
		{
			Name:    "atmospheric",
			Pattern: regexp.MustCompile(`(?i)(ambient|atmosphere|cinematic|drone|space)`),
			Genres:  []string{"ambient", "cinematic electronica", "downtempo"},
		},
		{
			Name:    "club",
			Pattern: regexp.MustCompile(`(?i)(club|dance|floor|dj|house|groove)`),
			Genres:  []string{"deep house", "tech-house", "uk garage"},
		},
		{
			Name:    "bass",
			Pattern: regexp.MustCompile(`(?i)(bass|808|trap|drill|grime)`),
			Genres:  []string{"trap", "future bass", "phonk"},
		},
		{
			Name:    "chill",
			Pattern: regexp.MustCompile(`(?i)(sunset|chill|relax|study|lofi|vibes)`),
			Genres:  []string{"lofi house", "chillwave", "vaporwave"},
		},
		{
			Name:    "festival",
			Pattern: regexp.MustCompile(`(?i)(festival|anthem|uplift|epic|rave)`),
			Genres:  []string{"progressive house", "melodic techno", "psytrance"},
		},
		{
			Name:    "tropical",
			Pattern: regexp.MustCompile(`(?i)(latin|tropical|summer|carnival)`),
			Genres:  []string{"latin house", "afrobeats", "baile funk"},
		},
		{
			Name:    "hip-hop",
			Pattern: regexp.MustCompile(`(?i)(hip\s?hop|rap|boom bap)`),
			Genres:  []string{"hip-hop", "trap soul", "lofi hip hop"},
		},
	}
}

// The Latin and Japanese prompt cues are case-sensitive; the others are not.
var (
	latinPromptCue = regexp.MustCompile(`reggaeton|baile|salsa|tropical`)
	japanPromptCue = regexp.MustCompile(`anime|tokyo`)
	southAsiaCue   = regexp.MustCompile(`(?i)bollywood|indian|desi|raag|bhangra`)
	westAfricaCue  = regexp.MustCompile(`(?i)afro|afrobeats|africa|lagos|naija`)
)

func genreText(sc models.SuggestionContext) string {
	return strings.ToLower(strings.Join(sc.Genres, " "))
}

// LanguageRules returns the cultural cue table in evaluation order
func LanguageRules() []LanguageRule {
	return []LanguageRule{
		{
			Name: "latin",
			Match: func(sc models.SuggestionContext) bool {
				return strings.Contains(genreText(sc), "latin") || latinPromptCue.MatchString(sc.Prompt)
			},
			Languages: []string{"Spanish", "Portuguese"},
		},
		{
			Name: "korean",
			Match: func(sc models.SuggestionContext) bool {
				g := genreText(sc)
				return strings.Contains(g, "k-pop") || strings.Contains(g, "korean")
			},
			Languages: []string{"Korean"},
		},
		{
			Name: "japanese",
			Match: func(sc models.SuggestionContext) bool {
				return strings.Contains(genreText(sc), "j-pop") || japanPromptCue.MatchString(sc.Prompt)
			},
			Languages: []string{"Japanese"},
		},
		{
			Name: "south-asian",
			Match: func(sc models.SuggestionContext) bool {
				return southAsiaCue.MatchString(sc.Prompt + " " + sc.Lyrics)
			},
			Languages: []string{"Hindi", "Punjabi", "Tamil"},
		},
		{
			Name: "west-african",
			Match: func(sc models.SuggestionContext) bool {
				return westAfricaCue.MatchString(sc.Prompt + " " + strings.Join(sc.Genres, ","))
			},
			Languages: []string{"Yoruba", "English"},
		},
	}
}

// ArtistRules returns the genre-to-artist-pool table. A genre may match several rules.
func ArtistRules() []ArtistRule {
	return []ArtistRule{
		{Keywords: []string{"ambient", "cinematic"}, Category: ArtistsAmbient},
		{Keywords: []string{"techno", "trance"}, Category: ArtistsTechno},
		{Keywords: []string{"house"}, Category: ArtistsHouse},
		{Keywords: []string{"trap", "bass"}, Category: ArtistsTrap},
		{Keywords: []string{"latin", "afro"}, Category: ArtistsLatin},
		{Keywords: []string{"pop", "hyperpop"}, Category: ArtistsPop},
		{Keywords: []string{"drum", "bass"}, Category: ArtistsBass},
	}
}

// Matches reports whether the lower-cased genre contains any of the rule's keywords
func (r ArtistRule) Matches(genre string) bool {
	genre = strings.ToLower(genre)
	for _, keyword := range r.Keywords {
		if strings.Contains(genre, keyword) {
			return true
		}
	}
	return false
}
