package epw

import "time"

// RecordFieldCount is the number of fields on every data line.
const RecordFieldCount = 35

// WeatherRecord is one decoded observation. Measured quantities are
// [Optional]; a field holding its missing sentinel in the file is absent.
type WeatherRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Flags     string    `json:"flags"` // data source and uncertainty flags

	DryBulbTemperature                    Optional[float64] `json:"dry_bulb_temperature"`
	DewPointTemperature                   Optional[float64] `json:"dew_point_temperature"`
	RelativeHumidity                      Optional[float64] `json:"relative_humidity"`
	AtmosphericPressure                   Optional[float64] `json:"atmospheric_pressure"`
	ExtraterrestrialHorizontalRadiation   Optional[float64] `json:"extraterrestrial_horizontal_radiation"`
	ExtraterrestrialDirectNormalRadiation Optional[float64] `json:"extraterrestrial_direct_normal_radiation"`
	HorizontalInfraredRadiationIntensity  Optional[float64] `json:"horizontal_infrared_radiation_intensity"`
	GlobalHorizontalRadiation             Optional[float64] `json:"global_horizontal_radiation"`
	DirectNormalRadiation                 Optional[float64] `json:"direct_normal_radiation"`
	DiffuseHorizontalRadiation            Optional[float64] `json:"diffuse_horizontal_radiation"`
	GlobalHorizontalIlluminance           Optional[float64] `json:"global_horizontal_illuminance"`
	DirectNormalIlluminance               Optional[float64] `json:"direct_normal_illuminance"`
	DiffuseHorizontalIlluminance          Optional[float64] `json:"diffuse_horizontal_illuminance"`
	ZenithLuminance                       Optional[float64] `json:"zenith_luminance"`
	WindDirection                         Optional[float64] `json:"wind_direction"`
	WindSpeed                             Optional[float64] `json:"wind_speed"`
	TotalSkyCover                         Optional[int]     `json:"total_sky_cover"`
	OpaqueSkyCover                        Optional[int]     `json:"opaque_sky_cover"`
	Visibility                            Optional[float64] `json:"visibility"`
	CeilingHeight                         Optional[int]     `json:"ceiling_height"`
	PresentWeatherObservation             string            `json:"present_weather_observation"`
	PresentWeatherCodes                   string            `json:"present_weather_codes"`
	PrecipitableWater                     Optional[float64] `json:"precipitable_water"`
	AerosolOpticalDepth                   Optional[float64] `json:"aerosol_optical_depth"`
	SnowDepth                             Optional[float64] `json:"snow_depth"`
	DaysSinceLastSnowfall                 Optional[int]     `json:"days_since_last_snowfall"`
	Albedo                                Optional[float64] `json:"albedo"`
	LiquidPrecipitationDepth              Optional[float64] `json:"liquid_precipitation_depth"`
	LiquidPrecipitationQuantity           Optional[float64] `json:"liquid_precipitation_quantity"`
}

// Data is the decoded data block in file order.
type Data []WeatherRecord

// Kind is the value type of a record field.
type Kind int

const (
	KindTimestamp Kind = iota
	KindText
	KindInteger
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindTimestamp:
		return "datetime"
	case KindText:
		return "string"
	case KindInteger:
		return "int"
	default:
		return "float"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Field describes one data line position after the date and time fields.
type Field struct {
	Index      int     // zero-based position on the data line
	Name       string  // column name
	Unit       string  // empty when dimensionless
	Kind       Kind    // value type
	Missing    float64 // missing sentinel, meaningful when HasMissing
	HasMissing bool

	floatRef func(*WeatherRecord) *Optional[float64]
	intRef   func(*WeatherRecord) *Optional[int]
	textRef  func(*WeatherRecord) *string
}

// dateFields are the first five positions, combined into the timestamp.
var dateFields = [5]string{"year", "month", "day", "hour", "minute"}

func floatField(i int, name, unit string, missing float64, get func(*WeatherRecord) *Optional[float64]) Field {
	return Field{Index: i, Name: name, Unit: unit, Kind: KindFloat, Missing: missing, HasMissing: true, floatRef: get}
}

func intField(i int, name, unit string, missing float64, get func(*WeatherRecord) *Optional[int]) Field {
	return Field{Index: i, Name: name, Unit: unit, Kind: KindInteger, Missing: missing, HasMissing: true, intRef: get}
}

func textField(i int, name string, get func(*WeatherRecord) *string) Field {
	return Field{Index: i, Name: name, Kind: KindText, textRef: get}
}

var schema = []Field{
	textField(5, "flags", func(r *WeatherRecord) *string { return &r.Flags }),
	floatField(6, "dry_bulb_temperature", "C", 99.9, func(r *WeatherRecord) *Optional[float64] { return &r.DryBulbTemperature }),
	floatField(7, "dew_point_temperature", "C", 99.9, func(r *WeatherRecord) *Optional[float64] { return &r.DewPointTemperature }),
	floatField(8, "relative_humidity", "%", 999, func(r *WeatherRecord) *Optional[float64] { return &r.RelativeHumidity }),
	floatField(9, "atmospheric_pressure", "Pa", 999999, func(r *WeatherRecord) *Optional[float64] { return &r.AtmosphericPressure }),
	floatField(10, "extraterrestrial_horizontal_radiation", "Wh/m2", 9999, func(r *WeatherRecord) *Optional[float64] {
		return &r.ExtraterrestrialHorizontalRadiation
	}),
	floatField(11, "extraterrestrial_direct_normal_radiation", "Wh/m2", 9999, func(r *WeatherRecord) *Optional[float64] {
		return &r.ExtraterrestrialDirectNormalRadiation
	}),
	floatField(12, "horizontal_infrared_radiation_intensity", "Wh/m2", 9999, func(r *WeatherRecord) *Optional[float64] {
		return &r.HorizontalInfraredRadiationIntensity
	}),
	floatField(13, "global_horizontal_radiation", "Wh/m2", 9999, func(r *WeatherRecord) *Optional[float64] { return &r.GlobalHorizontalRadiation }),
	floatField(14, "direct_normal_radiation", "Wh/m2", 9999, func(r *WeatherRecord) *Optional[float64] { return &r.DirectNormalRadiation }),
	floatField(15, "diffuse_horizontal_radiation", "Wh/m2", 9999, func(r *WeatherRecord) *Optional[float64] { return &r.DiffuseHorizontalRadiation }),
	floatField(16, "global_horizontal_illuminance", "lux", 999999, func(r *WeatherRecord) *Optional[float64] { return &r.GlobalHorizontalIlluminance }),
	floatField(17, "direct_normal_illuminance", "lux", 999999, func(r *WeatherRecord) *Optional[float64] { return &r.DirectNormalIlluminance }),
	floatField(18, "diffuse_horizontal_illuminance", "lux", 999999, func(r *WeatherRecord) *Optional[float64] { return &r.DiffuseHorizontalIlluminance }),
	floatField(19, "zenith_luminance", "Cd/m2", 9999, func(r *WeatherRecord) *Optional[float64] { return &r.ZenithLuminance }),
	floatField(20, "wind_direction", "deg", 999, func(r *WeatherRecord) *Optional[float64] { return &r.WindDirection }),
	floatField(21, "wind_speed", "m/s", 999, func(r *WeatherRecord) *Optional[float64] { return &r.WindSpeed }),
	intField(22, "total_sky_cover", "tenths", 99, func(r *WeatherRecord) *Optional[int] { return &r.TotalSkyCover }),
	intField(23, "opaque_sky_cover", "tenths", 99, func(r *WeatherRecord) *Optional[int] { return &r.OpaqueSkyCover }),
	floatField(24, "visibility", "km", 9999, func(r *WeatherRecord) *Optional[float64] { return &r.Visibility }),
	intField(25, "ceiling_height", "m", 99999, func(r *WeatherRecord) *Optional[int] { return &r.CeilingHeight }),
	textField(26, "present_weather_observation", func(r *WeatherRecord) *string { return &r.PresentWeatherObservation }),
	textField(27, "present_weather_codes", func(r *WeatherRecord) *string { return &r.PresentWeatherCodes }),
	floatField(28, "precipitable_water", "mm", 999, func(r *WeatherRecord) *Optional[float64] { return &r.PrecipitableWater }),
	floatField(29, "aerosol_optical_depth", "thousandths", 0.999, func(r *WeatherRecord) *Optional[float64] { return &r.AerosolOpticalDepth }),
	floatField(30, "snow_depth", "cm", 999, func(r *WeatherRecord) *Optional[float64] { return &r.SnowDepth }),
	intField(31, "days_since_last_snowfall", "days", 99, func(r *WeatherRecord) *Optional[int] { return &r.DaysSinceLastSnowfall }),
	floatField(32, "albedo", "", 999, func(r *WeatherRecord) *Optional[float64] { return &r.Albedo }),
	floatField(33, "liquid_precipitation_depth", "mm", 999, func(r *WeatherRecord) *Optional[float64] { return &r.LiquidPrecipitationDepth }),
	floatField(34, "liquid_precipitation_quantity", "hr", 99, func(r *WeatherRecord) *Optional[float64] { return &r.LiquidPrecipitationQuantity }),
}

// Schema returns the record fields after the date and time positions, in
// line order.
func Schema() []Field {
	out := make([]Field, len(schema))
	copy(out, schema)
	return out
}

// FieldAt returns the schema field at a data line position.
func FieldAt(index int) (Field, bool) {
	i := index - len(dateFields)
	if i < 0 || i >= len(schema) {
		return Field{}, false
	}
	return schema[i], true
}

// IsMissing reports whether token is this field's missing sentinel.
func (f Field) IsMissing(token string) bool {
	if !f.HasMissing {
		return false
	}
	v, err := parseFloat(token)
	return err == nil && v == f.Missing
}

// Present reports whether the field holds a value in r. Text fields are
// present when non-empty.
func (f Field) Present(r *WeatherRecord) bool {
	switch f.Kind {
	case KindFloat:
		return f.floatRef(r).Valid()
	case KindInteger:
		return f.intRef(r).Valid()
	default:
		return *f.textRef(r) != ""
	}
}

// Value returns the field's value in r: a string, a float64, an int, or nil
// when missing.
func (f Field) Value(r *WeatherRecord) any {
	switch f.Kind {
	case KindFloat:
		return f.floatRef(r).Any()
	case KindInteger:
		return f.intRef(r).Any()
	default:
		return *f.textRef(r)
	}
}

// Column is one entry of the tabular manifest.
type Column struct {
	Name string `json:"name"`
	Type Kind   `json:"type"`
	Unit string `json:"unit,omitempty"`
}

// Manifest lists the columns of the tabular view of [Data]: the timestamp,
// then every schema field in line order.
func Manifest() []Column {
	cols := make([]Column, 0, len(schema)+1)
	cols = append(cols, Column{Name: "timestamp", Type: KindTimestamp})
	for _, f := range schema {
		cols = append(cols, Column{Name: f.Name, Type: f.Kind, Unit: f.Unit})
	}
	return cols
}

// Values returns the record as a row matching [Manifest].
func (r *WeatherRecord) Values() []any {
	row := make([]any, 0, len(schema)+1)
	row = append(row, r.Timestamp)
	for _, f := range schema {
		row = append(row, f.Value(r))
	}
	return row
}
