package cmd

import (
	"time"

	"github.com/pbglang/pbg/pkg/pbg"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Load a key/value file (JSON, YAML or TOML, determined by extension) for use
// as an evaluation dictionary.
func readValuesFile(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	//
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	//
	return v, nil
}

// valuesResolver resolves keys against a loaded key/value file.
type valuesResolver struct {
	values *viper.Viper
}

// Resolve implementation for the pbg.Resolver interface.  Host values map
// onto literal nodes as follows: booleans onto TRUE/FALSE, numbers onto
// NUMBER, timestamps onto DATE, and strings onto DATE when they take the
// form of a date and onto STRING otherwise.  A missing or unconvertible
// value maps onto the UNRESOLVED sentinel.
func (r *valuesResolver) Resolve(key string) pbg.Node {
	if r.values == nil || !r.values.IsSet(key) {
		return pbg.Unresolved()
	}
	//
	switch value := r.values.Get(key).(type) {
	case bool:
		if value {
			return pbg.True()
		}
		//
		return pbg.False()
	case int:
		return pbg.Number(float64(value))
	case int64:
		return pbg.Number(float64(value))
	case uint64:
		return pbg.Number(float64(value))
	case float64:
		return pbg.Number(value)
	case string:
		if date, ok := pbg.ParseDate(value); ok {
			return pbg.NewDate(date.Year, date.Month, date.Day)
		}
		//
		return pbg.String(value)
	case time.Time:
		return pbg.NewDate(value.Year(), int(value.Month()), value.Day())
	}
	//
	log.Warnf("value for key [%s] has an unsupported type", key)
	//
	return pbg.Unresolved()
}
