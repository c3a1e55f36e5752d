package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dimension is one axis of an EmotionVector.
type Dimension int

const (
	Fear Dimension = iota
	Desire
	Calm
	Mystery
	Connection
	Transformation

	numDimensions = 6
)

var dimensionNames = [numDimensions]string{
	"Fear", "Desire", "Calm", "Mystery", "Connection", "Transformation",
}

// Dimensions returns every dimension in the fixed plotting order.
func Dimensions() []Dimension {
	return []Dimension{Fear, Desire, Calm, Mystery, Connection, Transformation}
}

func (d Dimension) String() string {
	if d < 0 || int(d) >= numDimensions {
		return "Dimension(" + strconv.Itoa(int(d)) + ")"
	}
	return dimensionNames[d]
}

// ParseDimension matches a dimension name case-insensitively.
func ParseDimension(s string) (Dimension, bool) {
	s = strings.TrimSpace(s)
	for i, name := range dimensionNames {
		if strings.EqualFold(s, name) {
			return Dimension(i), true
		}
	}
	return 0, false
}

// EmotionVector holds six emotion intensities, each within [0, 1].
// The zero value is a valid all-zero vector.
type EmotionVector struct {
	v [numDimensions]float64
}

// NewEmotionVector clamps every argument into [0, 1].
func NewEmotionVector(fear, desire, calm, mystery, connection, transformation float64) EmotionVector {
	var e EmotionVector
	for i, x := range [numDimensions]float64{fear, desire, calm, mystery, connection, transformation} {
		e.v[i] = Clamp01(x)
	}
	return e
}

// EmotionsFromMap builds a vector from named values. All six names must be
// present; values are clamped.
func EmotionsFromMap(m map[string]float64) (EmotionVector, error) {
	var (
		e    EmotionVector
		seen [numDimensions]bool
	)
	for k, x := range m {
		d, ok := ParseDimension(k)
		if !ok {
			continue
		}
		e.v[d] = Clamp01(x)
		seen[d] = true
	}
	for i, ok := range seen {
		if !ok {
			return EmotionVector{}, fmt.Errorf("%w: %s", ErrMissingEmotion, dimensionNames[i])
		}
	}
	return e, nil
}

// Clamp01 limits x to [0, 1]. NaN maps to 0.
func Clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

func (e EmotionVector) Get(d Dimension) float64 {
	if d < 0 || int(d) >= numDimensions {
		return 0
	}
	return e.v[d]
}

func (e EmotionVector) Fear() float64           { return e.v[Fear] }
func (e EmotionVector) Desire() float64         { return e.v[Desire] }
func (e EmotionVector) Calm() float64           { return e.v[Calm] }
func (e EmotionVector) Mystery() float64        { return e.v[Mystery] }
func (e EmotionVector) Connection() float64     { return e.v[Connection] }
func (e EmotionVector) Transformation() float64 { return e.v[Transformation] }

// Values returns the intensities in Dimensions() order.
func (e EmotionVector) Values() [6]float64 { return e.v }

// Sum is the total intensity across all dimensions.
func (e EmotionVector) Sum() float64 {
	var s float64
	for _, x := range e.v {
		s += x
	}
	return s
}

// With returns a copy of e with dimension d set to x (clamped).
func (e EmotionVector) With(d Dimension, x float64) EmotionVector {
	if d >= 0 && int(d) < numDimensions {
		e.v[d] = Clamp01(x)
	}
	return e
}

// MarshalJSON writes the dimensions as an object in plotting order.
func (e EmotionVector) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, name := range dimensionNames {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q:%s", name, strconv.FormatFloat(e.v[i], 'f', -1, 64))
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (e *EmotionVector) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	v, err := EmotionsFromMap(m)
	if err != nil {
		return err
	}
	*e = v
	return nil
}
