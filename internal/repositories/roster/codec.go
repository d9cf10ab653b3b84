package roster

import (
	"encoding/json"

	"github.com/KirkDiggler/artifact-tracker/internal/entities"
	"github.com/KirkDiggler/artifact-tracker/internal/errors"
)

func encodeSnapshot(characters []entities.CharacterData) ([]byte, error) {
	if characters == nil {
		characters = []entities.CharacterData{}
	}
	data, err := json.Marshal(characters)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal roster")
	}
	return data, nil
}

func decodeSnapshot(key string, data []byte) ([]entities.CharacterData, error) {
	var characters []entities.CharacterData
	if err := json.Unmarshal(data, &characters); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "stored roster is corrupted").
			WithMeta("key", key)
	}
	if characters == nil {
		characters = []entities.CharacterData{}
	}
	return characters, nil
}
