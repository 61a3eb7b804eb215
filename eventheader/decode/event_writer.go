package decode

import (
	"fmt"
	"io"
)

// stateError returns the enumerator's LastError if it has one, or a generic
// "stuck in an unexpected state" error otherwise. Every dispatch switch below
// falls back to this in its default arm, so a StateError enumerator always
// surfaces a meaningful error instead of looping or panicking.
func stateError(e *Enumerator) error {
	if err := e.LastError(); err != nil {
		return err
	}
	return fmt.Errorf("eventheader: enumeration in unexpected state %v", e.State())
}

// WriteItemAndMoveNextSibling renders the enumerator's current item (and,
// for ArrayBegin/StructBegin, every descendant) as one JSON value and
// advances the enumerator to the following sibling item. leadingComma
// should be true if a preceding item has already been written to w (so a
// separator is needed before this one); the returned bool is the same
// thing for whatever item now follows, so repeated calls can be chained
// without the caller tracking comma state itself.
//
// Precondition: e.State() is Value, ArrayBegin, or StructBegin.
func (e *Enumerator) WriteItemAndMoveNextSibling(w io.Writer, leadingComma bool, options ConvertOptions) (bool, error) {
	jw := NewJsonWriter(w, options, leadingComma)
	err := writeItemAndMoveNextSibling(jw, e)
	return jw.Comma(), err
}

// WriteEventJSON renders every top-level field of a freshly-enumerated event
// (e.State() == StateBeforeFirstItem) as a single JSON object and leaves the
// enumerator at StateAfterLastItem. Nested structs/arrays are rendered
// in full depth by way of WriteItemAndMoveNextSibling.
func WriteEventJSON(w io.Writer, e *Enumerator, options ConvertOptions) error {
	if e.State() != StateBeforeFirstItem {
		return fmt.Errorf("eventheader: WriteEventJSON requires a freshly-enumerated event, got state %v", e.State())
	}

	jw := NewJsonWriter(w, options, false)
	if err := jw.WriteObjectBegin(); err != nil {
		return err
	}

	e.MoveNext()
	for e.State() != StateAfterLastItem {
		if err := writeItemAndMoveNextSibling(jw, e); err != nil {
			return err
		}
	}

	return jw.WriteObjectEnd()
}

// WriteEventText renders every top-level field of a freshly-enumerated
// event (e.State() == StateBeforeFirstItem) as "name=value" pairs separated
// by "; ", leaving the enumerator at StateAfterLastItem. Arrays render as
// "[v1, v2]" and structs as "{ name=value; ... }", nesting to full depth.
func WriteEventText(w io.Writer, e *Enumerator, options ConvertOptions) error {
	if e.State() != StateBeforeFirstItem {
		return fmt.Errorf("eventheader: WriteEventText requires a freshly-enumerated event, got state %v", e.State())
	}

	e.MoveNext()
	first := true
	for e.State() != StateAfterLastItem {
		if !first {
			if _, err := io.WriteString(w, "; "); err != nil {
				return err
			}
		}
		first = false
		if err := writeItemText(w, e, options); err != nil {
			return err
		}
	}
	return nil
}

func writeItemText(w io.Writer, e *Enumerator, options ConvertOptions) error {
	switch e.State() {
	case StateValue:
		item := e.ItemInfo()
		if err := writeFieldNameText(w, item); err != nil {
			return err
		}
		if err := WriteItemValueText(w, e.Reader(), options, item); err != nil {
			return err
		}
		e.MoveNext()
		return nil
	case StateArrayBegin:
		item := e.ItemInfo()
		if err := writeFieldNameText(w, item); err != nil {
			return err
		}
		return writeArrayBodyText(w, e, options, item)
	case StateStructBegin:
		item := e.ItemInfo()
		if err := writeFieldNameText(w, item); err != nil {
			return err
		}
		return writeStructBodyText(w, e, options)
	default:
		return stateError(e)
	}
}

func writeFieldNameText(w io.Writer, item ItemInfo) error {
	if _, err := io.WriteString(w, fieldNameString(item.NameBytes)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "=")
	return err
}

func writeArrayBodyText(w io.Writer, e *Enumerator, options ConvertOptions, item ItemInfo) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}

	if item.Metadata.ElementSize != 0 {
		if err := WriteArrayValuesText(w, e.Reader(), options, item); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "]"); err != nil {
			return err
		}
		e.MoveNextSibling()
		return nil
	}

	e.MoveNext()
	first := true
	for e.State() != StateArrayEnd {
		if !first {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		first = false
		switch e.State() {
		case StateValue:
			if err := WriteItemValueText(w, e.Reader(), options, e.ItemInfo()); err != nil {
				return err
			}
			e.MoveNext()
		case StateStructBegin:
			if err := writeStructBodyText(w, e, options); err != nil {
				return err
			}
		default:
			return stateError(e)
		}
	}

	if _, err := io.WriteString(w, "]"); err != nil {
		return err
	}
	e.MoveNext()
	return nil
}

func writeStructBodyText(w io.Writer, e *Enumerator, options ConvertOptions) error {
	if _, err := io.WriteString(w, "{ "); err != nil {
		return err
	}

	e.MoveNext()
	first := true
	for e.State() != StateStructEnd {
		if !first {
			if _, err := io.WriteString(w, "; "); err != nil {
				return err
			}
		}
		first = false
		if err := writeItemText(w, e, options); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, " }"); err != nil {
		return err
	}
	e.MoveNext()
	return nil
}

// writeItemAndMoveNextSibling is WriteItemAndMoveNextSibling's body, reused
// by both the exported method and WriteEventJSON's top-level loop so that
// they share one JsonWriter's comma/space bookkeeping.
func writeItemAndMoveNextSibling(jw *JsonWriter, e *Enumerator) error {
	switch e.State() {
	case StateValue:
		return writeNamedValue(jw, e)
	case StateArrayBegin:
		return writeNamedArray(jw, e)
	case StateStructBegin:
		return writeNamedStruct(jw, e)
	default:
		return stateError(e)
	}
}

func writeNamedValue(jw *JsonWriter, e *Enumerator) error {
	item := e.ItemInfo()
	if err := jw.WritePropertyNameTagged(fieldNameString(item.NameBytes), item.Metadata.Tag); err != nil {
		return err
	}
	if err := WriteItemValueJSON(jw, e.Reader(), item); err != nil {
		return err
	}
	e.MoveNext()
	return nil
}

func writeNamedArray(jw *JsonWriter, e *Enumerator) error {
	item := e.ItemInfo()
	if err := jw.WritePropertyNameTagged(fieldNameString(item.NameBytes), item.Metadata.Tag); err != nil {
		return err
	}
	return writeArrayBody(jw, e, item)
}

func writeNamedStruct(jw *JsonWriter, e *Enumerator) error {
	item := e.ItemInfo()
	if err := jw.WritePropertyNameTagged(fieldNameString(item.NameBytes), item.Metadata.Tag); err != nil {
		return err
	}
	return writeStructBody(jw, e)
}

// writeArrayBody assumes e.State() == StateArrayBegin and that the array's
// property name has already been written. For fixed-element arrays it
// writes the whole backing blob at once and skips to the sibling with
// MoveNextSibling; for variable-element arrays (strings, binary, structs)
// it walks each element individually.
func writeArrayBody(jw *JsonWriter, e *Enumerator, item ItemInfo) error {
	if item.Metadata.ElementSize != 0 {
		if err := WriteArrayValuesJSON(jw, e.Reader(), item); err != nil {
			return err
		}
		e.MoveNextSibling()
		return nil
	}

	if err := jw.WriteArrayBegin(); err != nil {
		return err
	}

	e.MoveNext()
	for e.State() != StateArrayEnd {
		if err := writeBareElement(jw, e); err != nil {
			return err
		}
	}

	if err := jw.WriteArrayEnd(); err != nil {
		return err
	}
	e.MoveNext()
	return nil
}

// writeStructBody assumes e.State() == StateStructBegin and that the
// struct's property name (if any) has already been written.
func writeStructBody(jw *JsonWriter, e *Enumerator) error {
	if err := jw.WriteObjectBegin(); err != nil {
		return err
	}

	e.MoveNext()
	for e.State() != StateStructEnd {
		if err := writeItemAndMoveNextSibling(jw, e); err != nil {
			return err
		}
	}

	if err := jw.WriteObjectEnd(); err != nil {
		return err
	}
	e.MoveNext()
	return nil
}

// writeBareElement renders one unnamed array element: a scalar value's
// WriteItemValueJSON writes its own leading comma/space, as does a struct
// element's WriteObjectBegin.
func writeBareElement(jw *JsonWriter, e *Enumerator) error {
	switch e.State() {
	case StateValue:
		item := e.ItemInfo()
		if err := WriteItemValueJSON(jw, e.Reader(), item); err != nil {
			return err
		}
		e.MoveNext()
		return nil
	case StateStructBegin:
		return writeStructBody(jw, e)
	default:
		return stateError(e)
	}
}
