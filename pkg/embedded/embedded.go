package embedded

import (
	_ "embed"
)

// Embed all prompt data files
//
//go:embed data/prompts/suggestion_system.txt
var SuggestionSystemTxt []byte

//go:embed data/prompts/composer_system.txt
var ComposerSystemTxt []byte

//go:embed data/prompts/auditor_system.txt
var AuditorSystemTxt []byte

//go:embed data/prompts/creative_director_system.txt
var CreativeDirectorSystemTxt []byte
