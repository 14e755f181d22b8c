package aas

import "testing"

func TestValidate_Integers(t *testing.T) {
	for _, vt := range []ValueType{TypeInteger, TypeLong, TypeUnsignedLong} {
		if Validate("abc", vt).OK {
			t.Errorf("%s: \"abc\" should be invalid", vt)
		}
		if !Validate("42", vt).OK {
			t.Errorf("%s: \"42\" should be valid", vt)
		}
		if !Validate("", vt).OK {
			t.Errorf("%s: empty should always be valid", vt)
		}
		if Validate("3.5", vt).OK {
			t.Errorf("%s: \"3.5\" should be invalid", vt)
		}
	}
}

func TestValidate_UnsignedLongNegative(t *testing.T) {
	if Validate("-1", TypeUnsignedLong).OK {
		t.Error("\"-1\" should be invalid for xs:unsignedLong")
	}
	if !Validate("-1", TypeLong).OK {
		t.Error("\"-1\" should be valid for xs:long")
	}
}

func TestValidate_Boolean(t *testing.T) {
	if !Validate("true", TypeBoolean).OK {
		t.Error("\"true\" should be valid")
	}
	if !Validate("0", TypeBoolean).OK {
		t.Error("\"0\" should be valid (backend accepts 1/0)")
	}
	if Validate("yes", TypeBoolean).OK {
		t.Error("\"yes\" should be invalid")
	}
	if !Validate(true, TypeBoolean).OK {
		t.Error("native bool should be valid")
	}
}

func TestValidate_Floats(t *testing.T) {
	for _, vt := range []ValueType{TypeDouble, TypeFloat} {
		if !Validate("3.14", vt).OK {
			t.Errorf("%s: \"3.14\" should be valid", vt)
		}
		if Validate("twelve", vt).OK {
			t.Errorf("%s: \"twelve\" should be invalid", vt)
		}
		if Validate("Inf", vt).OK {
			t.Errorf("%s: infinity should be invalid", vt)
		}
	}
}

func TestValidate_AnyURI(t *testing.T) {
	if Validate("not a url", TypeAnyURI).OK {
		t.Error("\"not a url\" should be invalid")
	}
	if !Validate("https://example.com/a", TypeAnyURI).OK {
		t.Error("\"https://example.com/a\" should be valid")
	}
	if Validate("ftp://example.com", TypeAnyURI).OK {
		t.Error("non-http scheme should be invalid")
	}
	if Validate("/relative/path", TypeAnyURI).OK {
		t.Error("relative URL should be invalid")
	}
}

func TestValidate_Dates(t *testing.T) {
	if !Validate("2024-03-01", TypeDate).OK {
		t.Error("ISO date should be valid")
	}
	if !Validate("01/02/2024", TypeDate).OK {
		t.Error("slash-layout date should be valid")
	}
	if Validate("yesterday", TypeDate).OK {
		t.Error("\"yesterday\" should be invalid")
	}
	if !Validate("2024-03-01T10:30:00", TypeDateTime).OK {
		t.Error("ISO dateTime should be valid")
	}
	if !Validate("2024-03-01T10:30:00Z", TypeDateTime).OK {
		t.Error("RFC3339 dateTime should be valid")
	}
}

func TestValidate_StringAndUnknown(t *testing.T) {
	if !Validate("anything at all", TypeString).OK {
		t.Error("strings are always valid")
	}
	// Unrecognized declared types must not block a save.
	if !Validate("x", ValueType("xs:hexBinary")).OK {
		t.Error("unknown value type should not reject")
	}
}

// Empty input always formats to nil, never an empty string.
func TestFormat_EmptyIsNil(t *testing.T) {
	for _, vt := range ValueTypes {
		got, err := Format("", vt)
		if err != nil {
			t.Errorf("%s: Format(\"\") error: %v", vt, err)
		}
		if got != nil {
			t.Errorf("%s: Format(\"\") = %v, want nil", vt, got)
		}
		got, err = Format(nil, vt)
		if err != nil || got != nil {
			t.Errorf("%s: Format(nil) = %v, %v; want nil, nil", vt, got, err)
		}
	}
}

func TestFormat_Coercions(t *testing.T) {
	if got, err := Format("7", TypeUnsignedLong); err != nil || got != int64(7) {
		t.Errorf("Format(\"7\", unsignedLong) = %v, %v", got, err)
	}
	if _, err := Format("-3", TypeUnsignedLong); err == nil {
		t.Error("Format(\"-3\", unsignedLong) should fail")
	}
	if got, err := Format("true", TypeBoolean); err != nil || got != true {
		t.Errorf("Format(\"true\", boolean) = %v, %v", got, err)
	}
	if got, err := Format("2.5", TypeDouble); err != nil || got != 2.5 {
		t.Errorf("Format(\"2.5\", double) = %v, %v", got, err)
	}
	if got, err := Format("01/02/2024", TypeDate); err != nil || got != "2024-01-02" {
		t.Errorf("Format date = %v, %v; want normalized ISO", got, err)
	}
	if got, err := Format(42, TypeString); err != nil || got != "42" {
		t.Errorf("Format(42, string) = %v, %v", got, err)
	}
}
