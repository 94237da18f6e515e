// Package patient resolves claimed patient names against the flat discharge
// record store.
package patient

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/Nephro-Postcare-Assistant/agent/contract"
)

type Config struct {
	StorePath string `envconfig:"STORE_PATH" split_words:"true" default:"data/patients.json"`
}

// Directory looks up discharge records by patient name. The store is a JSON
// array of records with at least a patient_name field; it is read fresh on
// every lookup and never mutated.
type Directory struct {
	storePath string
}

var _ contractx.PatientDirectory = (*Directory)(nil)

func NewDirectory(cfg Config) *Directory {
	path := strings.TrimSpace(cfg.StorePath)
	if path == "" {
		path = "data/patients.json"
	}
	return &Directory{storePath: path}
}

// Lookup matches the name case-insensitively and exactly. Zero, one, and
// many matches are all non-exceptional outcomes; only an unreadable store
// is an error, and it must never degrade into a silent not-found.
func (d *Directory) Lookup(ctx context.Context, name string) (contractx.PatientLookup, error) {
	log.Info().Str("patient_name", name).Msg("patient lookup started")

	records, err := d.loadRecords()
	if err != nil {
		return contractx.PatientLookup{}, err
	}

	wanted := strings.ToLower(strings.TrimSpace(name))
	var matches []map[string]any
	for _, rec := range records {
		recordName, _ := rec["patient_name"].(string)
		if strings.ToLower(strings.TrimSpace(recordName)) == wanted {
			matches = append(matches, rec)
		}
	}

	switch len(matches) {
	case 0:
		log.Warn().Str("patient_name", name).Msg("no patient found")
		return contractx.PatientLookup{Status: contractx.LookupNotFound}, nil
	case 1:
		doc, err := json.MarshalIndent(matches[0], "", "  ")
		if err != nil {
			return contractx.PatientLookup{}, fmt.Errorf("%w: serialize record: %v", contractx.ErrPatientStore, err)
		}
		log.Info().Str("patient_name", name).Msg("patient found")
		return contractx.PatientLookup{
			Status:   contractx.LookupFound,
			Document: string(doc),
		}, nil
	default:
		log.Warn().Str("patient_name", name).Int("matches", len(matches)).Msg("multiple patients found")
		return contractx.PatientLookup{Status: contractx.LookupAmbiguous}, nil
	}
}

func (d *Directory) loadRecords() ([]map[string]any, error) {
	raw, err := os.ReadFile(d.storePath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", contractx.ErrPatientStore, d.storePath, err)
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", contractx.ErrPatientStore, d.storePath, err)
	}
	return records, nil
}
