package restaurant

import (
	"go.uber.org/zap/zapcore"

	"github.com/kailas-cloud/tablefinder/internal/domain/search/query"
)

// descriptorFields renders a query descriptor as a structured log object.
type descriptorFields struct {
	d *query.Descriptor
}

func (f descriptorFields) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if p := f.d.Point(); p != nil {
		enc.AddFloat64("lat", p.Latitude)
		enc.AddFloat64("long", p.Longitude)
	}
	if f.d.HasCuisines() {
		if err := enc.AddArray("cuisines", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
			for _, c := range f.d.Cuisines() {
				ae.AppendString(c)
			}
			return nil
		})); err != nil {
			return err
		}
	}
	enc.AddInt("page", f.d.Page())
	enc.AddInt("limit", f.d.Limit())
	return nil
}
