package cmd

import (
	"testing"
	"time"

	"github.com/pbglang/pbg/pkg/pbg"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestResolver_ValueMapping(t *testing.T) {
	values := viper.New()
	values.Set("age", 30)
	values.Set("ratio", 0.75)
	values.Set("name", "alice")
	values.Set("active", true)
	values.Set("joined", "2021-03-09")
	values.Set("seen", time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC))
	//
	resolver := &valuesResolver{values}
	//
	assert.Equal(t, pbg.Number(30), resolver.Resolve("age"))
	assert.Equal(t, pbg.Number(0.75), resolver.Resolve("ratio"))
	assert.Equal(t, pbg.String("alice"), resolver.Resolve("name"))
	assert.Equal(t, pbg.True(), resolver.Resolve("active"))
	// Strings taking the form of a date resolve to DATE nodes.
	assert.Equal(t, pbg.NewDate(2021, 3, 9), resolver.Resolve("joined"))
	assert.Equal(t, pbg.NewDate(2024, 12, 31), resolver.Resolve("seen"))
	// Missing keys resolve to the UNRESOLVED sentinel.
	assert.Equal(t, pbg.Unresolved(), resolver.Resolve("missing"))
}

func TestResolver_EndToEnd(t *testing.T) {
	values := viper.New()
	values.Set("age", 30)
	values.Set("status", "active")
	//
	expr, serr := pbg.Parse("(&,(>,[age],18),(=,[status],'active'))")
	assert.Nil(t, serr)
	//
	result, err := expr.Evaluate(&valuesResolver{values})
	assert.NoError(t, err)
	assert.True(t, result)
}

func TestResolver_NoValues(t *testing.T) {
	resolver := &valuesResolver{}
	assert.Equal(t, pbg.Unresolved(), resolver.Resolve("anything"))
}
