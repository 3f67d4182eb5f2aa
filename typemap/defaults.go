package typemap

import "github.com/c360studio/fabriconv/types"

// XSDNamespace is the XML Schema datatype namespace prefix.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

func registerXSDDefaults(r *Registry) {
	exact := func(name string, target types.ValueType) {
		r.Register(FormatXSD, name, Mapping{Target: target})
	}
	lossy := func(name string, target types.ValueType, note string) {
		r.Register(FormatXSD, name, Mapping{Target: target, PrecisionLoss: true, Note: note})
	}

	exact("string", types.ValueString)
	exact("normalizedString", types.ValueString)
	exact("token", types.ValueString)
	exact("language", types.ValueString)
	exact("anyURI", types.ValueString)
	exact("QName", types.ValueString)
	exact("hexBinary", types.ValueString)
	exact("base64Binary", types.ValueString)

	exact("boolean", types.ValueBoolean)

	exact("integer", types.ValueBigInt)
	exact("int", types.ValueBigInt)
	exact("long", types.ValueBigInt)
	exact("short", types.ValueBigInt)
	exact("byte", types.ValueBigInt)
	exact("nonNegativeInteger", types.ValueBigInt)
	exact("nonPositiveInteger", types.ValueBigInt)
	exact("positiveInteger", types.ValueBigInt)
	exact("negativeInteger", types.ValueBigInt)
	exact("unsignedInt", types.ValueBigInt)
	exact("unsignedShort", types.ValueBigInt)
	exact("unsignedByte", types.ValueBigInt)
	lossy("unsignedLong", types.ValueBigInt, "unsignedLong values above 2^63-1 overflow BigInt")

	exact("double", types.ValueDouble)
	exact("float", types.ValueDouble)
	lossy("decimal", types.ValueDouble, "arbitrary-precision decimal stored as Double")

	exact("dateTime", types.ValueDateTime)
	exact("dateTimeStamp", types.ValueDateTime)
	lossy("date", types.ValueDateTime, "date promoted to midnight DateTime")
	lossy("gYear", types.ValueDateTime, "year promoted to DateTime")
	lossy("gYearMonth", types.ValueDateTime, "year-month promoted to DateTime")
	lossy("time", types.ValueString, "time of day has no date component")
	lossy("duration", types.ValueString, "duration kept as ISO 8601 string")

	// rdf:langString appears as a datatype on language-tagged literals.
	r.Register(FormatXSD, "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString",
		Mapping{Target: types.ValueString})

	// Full-URI aliases for every XSD local name registered above.
	for name := range r.byFormat[FormatXSD] {
		r.RegisterAlias(FormatXSD, XSDNamespace+name, name)
	}
}

func registerDTDLDefaults(r *Registry) {
	exact := func(name string, target types.ValueType) {
		r.Register(FormatDTDL, name, Mapping{Target: target})
	}
	lossy := func(name string, target types.ValueType, note string) {
		r.Register(FormatDTDL, name, Mapping{Target: target, PrecisionLoss: true, Note: note})
	}

	exact("string", types.ValueString)
	exact("boolean", types.ValueBoolean)
	exact("integer", types.ValueBigInt)
	exact("long", types.ValueBigInt)
	exact("float", types.ValueDouble)
	exact("double", types.ValueDouble)
	exact("dateTime", types.ValueDateTime)
	lossy("date", types.ValueDateTime, "date promoted to midnight DateTime")
	lossy("time", types.ValueString, "time of day has no date component")
	lossy("duration", types.ValueString, "duration kept as ISO 8601 string")

	// Additional primitive schemas introduced by DTDL v4.
	exact("byte", types.ValueBigInt)
	exact("short", types.ValueBigInt)
	exact("unsignedByte", types.ValueBigInt)
	exact("unsignedShort", types.ValueBigInt)
	exact("unsignedInteger", types.ValueBigInt)
	lossy("unsignedLong", types.ValueBigInt, "unsignedLong values above 2^63-1 overflow BigInt")
	exact("uuid", types.ValueString)
	lossy("bytes", types.ValueString, "byte array kept as base64 string")
	lossy("decimal", types.ValueDouble, "arbitrary-precision decimal stored as Double")
}
