package testutils

import (
	"github.com/KirkDiggler/artifact-tracker/internal/entities"
)

// Test fixture names
const (
	TestCharacterName = "Zhongli"
	TestSetName       = "Deepwood"
)

// MainStatOptions are the main stats offered on every artifact piece in fixtures
var MainStatOptions = []string{"Crit Rate", "Crit Dmg", "Atk%", "EM", "ER", "Dendro DMG%"}

// CreateTestVocabulary returns a small but complete vocabulary
func CreateTestVocabulary() *entities.Vocabulary {
	return &entities.Vocabulary{
		Characters: []entities.Entry{
			{Name: "Kinich"}, {Name: "Aino"}, {Name: "Zhongli", Icon: "icons/zhongli.png"},
			{Name: "Tighnari"}, {Name: "Nahida"}, {Name: "Xiangling"},
		},
		ArtifactSets: []entities.Entry{
			{Name: "Deepwood", Icon: "icons/deepwood.png"}, {Name: "Golden Troupe"}, {Name: "Silken Moon"},
			{Name: "Wanderer's Troupe"}, {Name: "Blizzard Strayer"},
		},
		MainStats: entities.MainStats{
			Sands:   MainStatOptions,
			Goblet:  MainStatOptions,
			Circlet: MainStatOptions,
		},
		SubStats: []string{"Crit Rate", "Crit Dmg", "Atk%", "EM", "ER"},
	}
}
