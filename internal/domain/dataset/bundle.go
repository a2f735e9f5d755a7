package dataset

import (
	"encoding/json"
	"fmt"

	"github.com/turtacn/recreation-potential/pkg/errors"
)

// Bundle holds decoded, validated dataset documents prior to indexing.  Nil
// fields mean the dataset was not supplied.
type Bundle struct {
	Regions        *RegionsFile
	Infrastructure *InfrastructureFile
	ProtectedAreas *ProtectedAreasFile
	Points         *PointCollection
	Fires          *FireCollection
}

// Apply decodes data as the given dataset, validates it and stores it in the
// bundle.  On error the bundle is left unchanged.
func (b *Bundle) Apply(kind Kind, data []byte) error {
	switch kind {
	case KindPopulation:
		var f RegionsFile
		if err := decode(kind, data, &f); err != nil {
			return err
		}
		if err := ValidateRegions(&f); err != nil {
			return err
		}
		b.Regions = &f
	case KindInfrastructure:
		var f InfrastructureFile
		if err := decode(kind, data, &f); err != nil {
			return err
		}
		if err := ValidateInfrastructure(&f); err != nil {
			return err
		}
		b.Infrastructure = &f
	case KindProtectedAreas:
		var f ProtectedAreasFile
		if err := decode(kind, data, &f); err != nil {
			return err
		}
		if err := ValidateProtectedAreas(&f); err != nil {
			return err
		}
		b.ProtectedAreas = &f
	case KindPoints:
		var c PointCollection
		if err := decode(kind, data, &c); err != nil {
			return err
		}
		if err := ValidatePoints(&c); err != nil {
			return err
		}
		b.Points = &c
	case KindFires:
		var c FireCollection
		if err := decode(kind, data, &c); err != nil {
			return err
		}
		if err := ValidateFires(&c); err != nil {
			return err
		}
		b.Fires = &c
	default:
		return errors.New(errors.ErrCodeDatasetUnknown, "unknown dataset").WithDetail(string(kind))
	}
	return nil
}

// Has reports whether the dataset is present in the bundle.
func (b *Bundle) Has(kind Kind) bool {
	switch kind {
	case KindPopulation:
		return b.Regions != nil
	case KindInfrastructure:
		return b.Infrastructure != nil
	case KindProtectedAreas:
		return b.ProtectedAreas != nil
	case KindPoints:
		return b.Points != nil
	case KindFires:
		return b.Fires != nil
	}
	return false
}

// Complete returns an error if a required dataset is missing.
func (b *Bundle) Complete() error {
	for _, k := range AllKinds {
		if k.Required() && !b.Has(k) {
			return errors.NotLoaded().WithDetail(fmt.Sprintf("dataset %q is required", k))
		}
	}
	return nil
}

func decode(kind Kind, data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.DatasetInvalid(string(kind), err.Error()).WithCause(err)
	}
	return nil
}

//Personal.AI order the ending
