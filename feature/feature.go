package feature

import (
	"fmt"
	"strconv"
)

/*
Feature describes one column of a labeled dataset: a property that can
be observed on every sample. The order of a feature slice defines the
column order of the datasets built with it.
*/
type Feature interface {
	Name() string
	// Valid reports whether the given value is acceptable
	// for the feature, with an error describing the reason
	// when it is not.
	Valid(interface{}) (bool, error)
	// Parse converts the textual representation of a value,
	// as found on CSV cells or DB columns, into the value
	// type of the feature.
	Parse(string) (interface{}, error)
}

/*
ContinuousFeature is a feature whose values are float64 numbers.
*/
type ContinuousFeature struct {
	name string
}

/*
DiscreteFeature is a feature whose values are strings drawn from a
finite set.
*/
type DiscreteFeature struct {
	name            string
	availableValues []string
}

/*
NewContinuousFeature takes a name string and returns a continuous
feature with the given name.
*/
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

/*
NewDiscreteFeature takes a name string and a slice of available value
strings and returns a discrete feature with the given name and
available values.
*/
func NewDiscreteFeature(name string, availableValues []string) *DiscreteFeature {
	return &DiscreteFeature{name, availableValues}
}

/*
Name returns a string with the name of the feature
*/
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

/*
Valid receives a value and returns true when it is a float64, or false
and an error describing the reason otherwise. A nil value counts as
valid so datasets may carry unknown values.
*/
func (cf *ContinuousFeature) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	if _, ok := value.(float64); !ok {
		return false, fmt.Errorf("continuous feature %s expects float64 value, got %T value", cf.name, value)
	}
	return true, nil
}

/*
Parse converts the given string into a float64 value for the feature or
returns an error if it cannot be interpreted as a number.
*/
func (cf *ContinuousFeature) Parse(s string) (interface{}, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing value for continuous feature %s: %v", cf.name, err)
	}
	return v, nil
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

/*
Valid receives a value and returns true when it is a string included in
the available values of the feature. Otherwise it returns false and an
error describing the reason. A nil value counts as valid.
*/
func (df *DiscreteFeature) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	vs, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("discrete feature %s expects string value, got %T value", df.name, value)
	}
	for _, av := range df.availableValues {
		if av == vs {
			return true, nil
		}
	}
	return false, fmt.Errorf("discrete feature %s got unknown value %s", df.name, vs)
}

/*
Parse returns the given string when it is one of the available values of
the feature and an error otherwise.
*/
func (df *DiscreteFeature) Parse(s string) (interface{}, error) {
	if ok, err := df.Valid(s); !ok {
		return nil, err
	}
	return s, nil
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

func (df *DiscreteFeature) String() string {
	return df.name
}

/*
Named takes a slice of features and a name and returns the index of the
feature with the given name on the slice, or -1 if no feature on the
slice has that name.
*/
func Named(features []Feature, name string) int {
	for i, f := range features {
		if f.Name() == name {
			return i
		}
	}
	return -1
}

/*
Names returns the names of the given features, in column order.
*/
func Names(features []Feature) []string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name()
	}
	return names
}
