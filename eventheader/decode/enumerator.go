package decode

import (
	"github.com/microsoft/linuxtracepoints-go/eventheader"
	"github.com/microsoft/linuxtracepoints-go/eventheadertypes"
)

// readFieldError is the sentinel fieldType.encoding value that means "the
// metadata bytes at the current position do not describe a valid field."
// It is numerically the same as FieldEncodingInvalid; a legitimately
// invalid encoding byte and a truncated-metadata error are the same
// terminal condition as far as the state machine is concerned.
const readFieldError = eventheadertypes.FieldEncodingInvalid

// stackEntry is one level of the enumerator's struct-nesting stack: enough
// state to resume enumerating a parent struct's remaining fields once its
// current child field (or array of children) has been fully walked.
type stackEntry struct {
	// nextOffset is the metadata offset where the next field descriptor
	// (sibling, or first child of a struct) begins.
	nextOffset uint32

	// nameOffset is the metadata offset of the current field's name.
	nameOffset uint32
	nameLen    uint16

	arrayIndex uint16
	arrayCount uint16

	// remainingFieldCount is decremented once per sibling field consumed
	// at this nesting level; it starts at 255 for the top level (meaning
	// "until end of metadata") and at a struct's declared field count for
	// a struct's children.
	remainingFieldCount uint8
}

// fieldType is the decoded encoding/format/tag of the field descriptor
// currently being visited, already reduced to base values (flag bits
// consumed during parsing).
type fieldType struct {
	encoding eventheadertypes.FieldEncoding
	format   eventheadertypes.FieldFormat
	tag      uint16
}

// DecoderContext is the reusable state of an EventHeader decode. Construct
// one and call Enumerate/EnumerateWithLimit once per event; the context
// holds the fixed-size struct-nesting stack so repeated enumeration (e.g.
// walking a long trace) reuses it; the only per-event allocation is the
// Enumerator that Enumerate returns.
type DecoderContext struct {
	header          eventheadertypes.EventHeader
	keyword         uint64
	metaStart       uint32
	metaEnd         uint32
	activityIdStart uint32
	activityIdLen   uint8
	byteReader      ByteReader
	eventNameLen    uint16
	dataStart       uint32

	dataPosRaw        uint32
	moveNextRemaining uint32
	stackTop          stackEntry
	stackIndex        uint8
	state             State
	substate          subState
	lastError         error

	elementSize    uint8
	fieldType      fieldType
	dataPosCooked  uint32
	itemSizeRaw    uint32
	itemSizeCooked uint32

	stack [MaxStructNestDepth]stackEntry
}

// Enumerator walks the items of a single event. It borrows its
// DecoderContext, tracepoint name, and event bytes; its move and
// item-inspection methods do not allocate (WriteItemAndMoveNextSibling
// formats through an io.Writer and may).
type Enumerator struct {
	ctx            *DecoderContext
	tracepointName string
	eventData      []byte
}

// Enumerate validates tracepointName/eventData and returns an Enumerator
// positioned before the first item, using DefaultMoveNextLimit as the
// MoveNext budget.
func (c *DecoderContext) Enumerate(tracepointName string, eventData []byte) (*Enumerator, error) {
	return c.EnumerateWithLimit(tracepointName, eventData, DefaultMoveNextLimit)
}

// EnumerateWithLimit is Enumerate with an explicit cap on the number of
// MoveNext calls that may be made against the returned Enumerator before it
// fails with ImplementationLimit.
func (c *DecoderContext) EnumerateWithLimit(tracepointName string, eventData []byte, moveNextLimit uint32) (*Enumerator, error) {
	if len(eventData) < eventheadertypes.HeaderSize || len(eventData) >= 0x80000000 || len(tracepointName)+1 > eventheader.MaxNameSize {
		return nil, InvalidParameter
	}

	pos := 0
	c.header.Flags = eventheadertypes.HeaderFlags(eventData[pos])
	c.byteReader = NewByteReader(c.header.Flags&eventheadertypes.HeaderFlagLittleEndian == 0)
	pos++
	c.header.Version = eventData[pos]
	pos++
	c.header.Id = c.byteReader.U16(eventData[pos:])
	pos += 2
	c.header.Tag = c.byteReader.U16(eventData[pos:])
	pos += 2
	c.header.Opcode = eventheadertypes.Opcode(eventData[pos])
	pos++
	c.header.Level = eventheadertypes.Level(eventData[pos])
	pos++

	if !c.header.Flags.Valid() {
		return nil, NotSupported
	}

	id, err := eventheader.ParseTracepointName(tracepointName)
	if err != nil || id.Level != uint8(c.header.Level) {
		return nil, NotSupported
	}
	c.keyword = id.Keyword

	c.metaStart = 0
	c.metaEnd = 0
	c.activityIdStart = 0
	c.activityIdLen = 0

	if c.header.Flags&eventheadertypes.HeaderFlagExtension != 0 {
		for {
			if len(eventData)-pos < eventheadertypes.ExtensionHeaderSize {
				return nil, InvalidData
			}

			extSize := int(c.byteReader.U16(eventData[pos:]))
			pos += 2
			extKind := eventheadertypes.ExtensionKind(c.byteReader.U16(eventData[pos:]))
			pos += 2

			if len(eventData)-pos < extSize {
				return nil, InvalidData
			}

			switch extKind.Value() {
			case eventheadertypes.ExtensionKindInvalid:
				return nil, InvalidData

			case eventheadertypes.ExtensionKindMetadata:
				if c.metaStart != 0 {
					return nil, InvalidData
				}
				c.metaStart = uint32(pos)
				c.metaEnd = c.metaStart + uint32(extSize)

			case eventheadertypes.ExtensionKindActivityId:
				if c.activityIdStart != 0 || (extSize != eventheadertypes.ActivityIdSize && extSize != eventheadertypes.ActivityIdAndRelatedSize) {
					return nil, InvalidData
				}
				c.activityIdStart = uint32(pos)
				c.activityIdLen = uint8(extSize)
			}

			pos += extSize

			if !extKind.Chained() {
				break
			}
		}
	}

	if c.metaStart == 0 {
		return nil, NotSupported
	}

	namePos := int(c.metaStart)
	for {
		if namePos >= int(c.metaEnd) {
			return nil, InvalidData
		}
		if eventData[namePos] == 0 {
			break
		}
		namePos++
	}

	c.eventNameLen = uint16(namePos - int(c.metaStart))
	c.dataStart = uint32(pos)
	c.reset(moveNextLimit)

	return &Enumerator{ctx: c, tracepointName: tracepointName, eventData: eventData}, nil
}

func (c *DecoderContext) reset(moveNextLimit uint32) {
	c.dataPosRaw = c.dataStart
	c.moveNextRemaining = moveNextLimit
	c.stackTop = stackEntry{
		nextOffset:          c.metaStart + uint32(c.eventNameLen) + 1,
		remainingFieldCount: 255,
	}
	c.stackIndex = 0
	c.setState(StateBeforeFirstItem, subStateBeforeFirstItem)
	c.lastError = nil
}

// Reset repositions e before the first item of its event, restoring
// DefaultMoveNextLimit.
func (e *Enumerator) Reset() {
	e.ctx.reset(DefaultMoveNextLimit)
}

// ResetWithLimit repositions e before the first item of its event with an
// explicit MoveNext budget.
func (e *Enumerator) ResetWithLimit(moveNextLimit uint32) {
	e.ctx.reset(moveNextLimit)
}

// State returns the enumerator's current position.
func (e *Enumerator) State() State { return e.ctx.state }

// LastError returns the reason the enumerator entered StateError, or nil if
// it has not.
func (e *Enumerator) LastError() error { return e.ctx.lastError }

// Reader returns the ByteReader matching the source event's byte order, for
// callers that need to decode ItemInfo.Value themselves (the WriteItemValue*
// helpers already do this internally).
func (e *Enumerator) Reader() ByteReader { return e.ctx.byteReader }

// RawDataPosition returns the event bytes not yet consumed by decoding.
// After enumeration completes, more than a few bytes of remainder can
// indicate trailing padding (normal) or data corruption.
func (e *Enumerator) RawDataPosition() []byte {
	return e.eventData[e.ctx.dataPosRaw:]
}

// EventInfo returns the attributes of the event as a whole: name, provider,
// options, keyword, level/opcode/tag/id/version, and activity ids.
func (e *Enumerator) EventInfo() EventInfo {
	c := e.ctx
	id, _ := eventheader.ParseTracepointName(e.tracepointName)

	nameStart := c.metaStart
	nameEnd := nameStart + uint32(c.eventNameLen)

	info := EventInfo{
		Provider:  id.Provider,
		Options:   id.Options,
		Keyword:   c.keyword,
		NameBytes: e.eventData[nameStart:nameEnd],
		Level:     c.header.Level,
		Opcode:    c.header.Opcode,
		Tag:       c.header.Tag,
		Id:        c.header.Id,
		Version:   c.header.Version,
		BigEndian: c.byteReader.BigEndian(),
		Pointer64: c.header.Flags&eventheadertypes.HeaderFlagPointer64 != 0,
	}

	if c.activityIdLen >= eventheadertypes.ActivityIdSize {
		start := c.activityIdStart
		info.ActivityId = e.eventData[start : start+eventheadertypes.ActivityIdSize]
	}
	if c.activityIdLen >= eventheadertypes.ActivityIdAndRelatedSize {
		start := c.activityIdStart + eventheadertypes.ActivityIdSize
		info.RelatedActivityId = e.eventData[start : start+eventheadertypes.ActivityIdSize]
	}

	return info
}

// ItemInfo returns the name/metadata/value of the current item.
//
// Precondition: e.State().CanGetItemInfo(), i.e. MoveNext/MoveNextSibling
// has most recently returned true.
func (e *Enumerator) ItemInfo() ItemInfo {
	c := e.ctx
	nameStart := c.stackTop.nameOffset
	nameEnd := nameStart + uint32(c.stackTop.nameLen)
	dataPos := c.dataPosCooked

	return ItemInfo{
		NameBytes: e.eventData[nameStart:nameEnd],
		Metadata:  e.itemMetadata(),
		Value:     e.eventData[dataPos : dataPos+c.itemSizeCooked],
	}
}

func (e *Enumerator) itemMetadata() ItemMetadata {
	c := e.ctx
	isScalar := c.state < StateArrayBegin || c.state > StateArrayEnd
	count := 1
	if !isScalar {
		count = int(c.stackTop.arrayCount)
	}
	return ItemMetadata{
		Encoding:     c.fieldType.encoding,
		Format:       c.fieldType.format,
		Tag:          c.fieldType.tag,
		IsArray:      !isScalar,
		ElementSize:  int(c.elementSize),
		ElementCount: count,
		ArrayIndex:   int(c.stackTop.arrayIndex),
	}
}

// MoveNext advances to the next item (field, array/struct boundary, or end
// of event), returning false when there is no next item: either the event
// is exhausted (State() == StateAfterLastItem) or a decode error occurred
// (State() == StateError, LastError() explains why).
func (e *Enumerator) MoveNext() bool {
	c := e.ctx
	data := e.eventData

	if c.moveNextRemaining == 0 {
		return c.setErrorState(ImplementationLimit)
	}
	c.moveNextRemaining--

	var movedToItem bool
	switch c.substate {
	case subStateBeforeFirstItem:
		movedToItem = e.nextProperty()

	case subStateValueScalar:
		c.dataPosRaw += c.itemSizeRaw
		movedToItem = e.nextProperty()

	case subStateValueSimpleArrayElement:
		c.dataPosRaw += c.itemSizeRaw
		c.stackTop.arrayIndex++
		if c.stackTop.arrayCount == c.stackTop.arrayIndex {
			c.setEndState(StateArrayEnd, subStateArrayEnd)
		} else {
			e.startValueSimple()
		}
		movedToItem = true

	case subStateValueComplexArrayElement:
		c.dataPosRaw += c.itemSizeRaw
		c.stackTop.arrayIndex++
		if c.stackTop.arrayCount == c.stackTop.arrayIndex {
			c.setEndState(StateArrayEnd, subStateArrayEnd)
			movedToItem = true
		} else {
			movedToItem = e.startValue()
		}

	case subStateArrayBegin:
		switch {
		case c.stackTop.arrayCount == 0:
			c.setEndState(StateArrayEnd, subStateArrayEnd)
			movedToItem = true
		case c.elementSize != 0:
			c.itemSizeCooked = uint32(c.elementSize)
			c.itemSizeRaw = uint32(c.elementSize)
			c.setState(StateValue, subStateValueSimpleArrayElement)
			e.startValueSimple()
			movedToItem = true
		case c.fieldType.encoding.Value() != eventheadertypes.FieldEncodingStruct:
			c.setState(StateValue, subStateValueComplexArrayElement)
			movedToItem = e.startValue()
		default:
			e.startStruct()
			movedToItem = true
		}

	case subStateArrayEnd:
		// A 0-length array of struct never walks the child struct's
		// metadata naturally, so stackTop.nextOffset needs a manual
		// skip-ahead before the sibling search in nextProperty can run.
		if c.fieldType.encoding.Value() == eventheadertypes.FieldEncodingStruct && c.stackTop.arrayCount == 0 {
			if !e.skipStructMetadata(data) {
				movedToItem = false
				break
			}
		}
		movedToItem = e.nextProperty()

	case subStateStructBegin:
		if c.stackIndex >= MaxStructNestDepth {
			movedToItem = c.setErrorState(StackOverflow)
		} else {
			c.stack[c.stackIndex] = c.stackTop
			c.stackIndex++
			c.stackTop.remainingFieldCount = uint8(c.fieldType.format.Value())
			movedToItem = e.nextProperty()
		}

	case subStateStructEnd:
		c.stackTop.arrayIndex++
		switch {
		case c.stackTop.arrayCount != c.stackTop.arrayIndex:
			e.startStruct()
			movedToItem = true
		case c.fieldType.encoding.IsArray():
			c.setEndState(StateArrayEnd, subStateArrayEnd)
			movedToItem = true
		default:
			movedToItem = e.nextProperty()
		}

	default:
		movedToItem = false
	}

	return movedToItem
}

// MoveNextSibling advances past the current item's entire subtree: for a
// scalar or array element this is identical to MoveNext, but for
// ArrayBegin/StructBegin it moves to the item that follows the matching
// End. An array of fixed-size elements is skipped in one step; a struct or
// an array of complex elements is walked item by item internally.
func (e *Enumerator) MoveNextSibling() bool {
	c := e.ctx
	depth := 0
	var movedToItem bool
	for {
		switch c.state {
		case StateArrayEnd, StateStructEnd:
			depth--
		case StateStructBegin:
			depth++
		case StateArrayBegin:
			if c.elementSize == 0 || c.moveNextRemaining == 0 {
				depth++
			} else {
				// A fixed-element array is skipped in one jump: nextProperty
				// already lands on the true sibling, so (unlike the End
				// cases above) no further MoveNext is needed to step past it.
				c.dataPosRaw += uint32(c.stackTop.arrayCount) * uint32(c.elementSize)
				c.moveNextRemaining--
				movedToItem = e.nextProperty()
				if !movedToItem || depth <= 0 {
					return movedToItem
				}
				continue
			}
		}

		movedToItem = e.MoveNext()
		if !movedToItem || depth <= 0 {
			break
		}
	}
	return movedToItem
}

// MoveNextMetadata advances through the field descriptors of the event
// without requiring (or validating against) any payload bytes: a
// shape-only walk of the metadata block, useful for inspecting an event's
// schema independent of any particular instance's data. It is legal to
// call only from StateBeforeFirstItem, or repeatedly once started.
func (e *Enumerator) MoveNextMetadata() bool {
	c := e.ctx
	data := e.eventData

	if c.substate != subStateValueMetadata {
		c.stackTop.arrayIndex = 0
		c.dataPosCooked = uint32(len(data))
		c.itemSizeCooked = 0
		c.elementSize = 0
		c.setState(StateValue, subStateValueMetadata)
	}

	var movedToItem bool
	if c.stackTop.nextOffset != c.metaEnd {
		c.stackTop.nameOffset = c.stackTop.nextOffset

		ft := e.readFieldNameAndType()
		switch {
		case ft.encoding == readFieldError:
			movedToItem = c.setErrorState(InvalidData)
		case ft.encoding.Value() == eventheadertypes.FieldEncodingStruct && ft.format == eventheadertypes.FieldFormatDefault:
			movedToItem = c.setErrorState(InvalidData)
		case !ft.encoding.IsArray():
			c.fieldType = ft
			c.stackTop.arrayCount = 1
			movedToItem = true
			c.setState(StateValue, subStateValueMetadata)
		case ft.encoding.IsCArray() && ft.encoding.IsVArray():
			c.fieldType = ft
			movedToItem = c.setErrorState(NotSupported)
		case ft.encoding.IsVArray():
			c.fieldType = ft
			c.stackTop.arrayCount = 0
			movedToItem = true
			c.setState(StateArrayBegin, subStateValueMetadata)
		case ft.encoding.IsCArray():
			c.fieldType = ft
			if c.metaEnd-c.stackTop.nextOffset < 2 {
				movedToItem = c.setErrorState(InvalidData)
			} else {
				c.stackTop.arrayCount = c.byteReader.U16(data[c.stackTop.nextOffset:])
				c.stackTop.nextOffset += 2
				if c.stackTop.arrayCount == 0 {
					movedToItem = c.setErrorState(InvalidData)
				} else {
					movedToItem = true
					c.setState(StateArrayBegin, subStateValueMetadata)
				}
			}
		default:
			c.fieldType = ft
			movedToItem = c.setErrorState(NotSupported)
		}
	} else {
		c.setEndState(StateAfterLastItem, subStateAfterLastItem)
		movedToItem = false
	}

	return movedToItem
}

func (e *Enumerator) skipStructMetadata(data []byte) bool {
	c := e.ctx
	remainingFieldCount := int(c.fieldType.format.Value())
	for {
		if remainingFieldCount == 0 || c.stackTop.nextOffset == c.metaEnd {
			return true
		}

		c.stackTop.nameOffset = c.stackTop.nextOffset

		ft := e.readFieldNameAndType()
		if ft.encoding == readFieldError {
			return c.setErrorState(InvalidData)
		}

		if ft.encoding.Value() == eventheadertypes.FieldEncodingStruct {
			remainingFieldCount += int(ft.format.Value())
		}

		switch {
		case !ft.encoding.IsCArray():
		case !ft.encoding.IsVArray():
			if c.metaEnd-c.stackTop.nextOffset < 2 {
				return c.setErrorState(InvalidData)
			}
			c.stackTop.nextOffset += 2
		default:
			return c.setErrorState(NotSupported)
		}

		remainingFieldCount--
	}
}

func (e *Enumerator) nextProperty() bool {
	c := e.ctx
	data := e.eventData

	if c.stackTop.remainingFieldCount != 0 && c.stackTop.nextOffset != c.metaEnd {
		c.stackTop.remainingFieldCount--
		c.stackTop.arrayIndex = 0
		c.stackTop.nameOffset = c.stackTop.nextOffset

		ft := e.readFieldNameAndType()
		if ft.encoding == readFieldError {
			return c.setErrorState(InvalidData)
		}
		c.fieldType = ft

		if !ft.encoding.IsArray() {
			c.stackTop.arrayCount = 1
			if ft.encoding.Value() != eventheadertypes.FieldEncodingStruct {
				c.setState(StateValue, subStateValueScalar)
				return e.startValue()
			}
			if ft.format == eventheadertypes.FieldFormatDefault {
				return c.setErrorState(InvalidData)
			}
			e.startStruct()
			return true
		}

		if ft.encoding.IsCArray() && ft.encoding.IsVArray() {
			return c.setErrorState(NotSupported)
		}

		if ft.encoding.IsVArray() {
			if len(data)-int(c.dataPosRaw) < 2 {
				return c.setErrorState(InvalidData)
			}
			c.stackTop.arrayCount = c.byteReader.U16(data[c.dataPosRaw:])
			c.dataPosRaw += 2
			return e.startArray()
		}

		if ft.encoding.IsCArray() {
			if c.metaEnd-c.stackTop.nextOffset < 2 {
				return c.setErrorState(InvalidData)
			}
			c.stackTop.arrayCount = c.byteReader.U16(data[c.stackTop.nextOffset:])
			c.stackTop.nextOffset += 2
			if c.stackTop.arrayCount == 0 {
				return c.setErrorState(InvalidData)
			}
			return e.startArray()
		}

		return c.setErrorState(NotSupported)
	}

	if c.stackIndex != 0 {
		// End of struct: pop.
		c.stackIndex--
		childMetadataOffset := c.stackTop.nextOffset
		c.stackTop = c.stack[c.stackIndex]

		c.fieldType = e.readFieldType(c.stackTop.nameOffset + uint32(c.stackTop.nameLen) + 1)
		c.elementSize = 0

		if c.stackTop.arrayIndex+1 == c.stackTop.arrayCount {
			c.stackTop.nextOffset = childMetadataOffset
		}

		c.setEndState(StateStructEnd, subStateStructEnd)
		return true
	}

	if c.stackTop.nextOffset != c.metaEnd {
		// More top-level fields than the top-level remainingFieldCount
		// (255) can count; treated the same as an unrecognized shape.
		return c.setErrorState(NotSupported)
	}

	c.setEndState(StateAfterLastItem, subStateAfterLastItem)
	return false
}

func (e *Enumerator) readFieldNameAndType() fieldType {
	c := e.ctx
	data := e.eventData
	nameBegin := c.stackTop.nameOffset

	nameEnd := nameBegin
	for nameEnd < c.metaEnd && data[nameEnd] != 0 {
		nameEnd++
	}

	if c.metaEnd-nameEnd < 2 {
		return fieldType{encoding: readFieldError}
	}

	c.stackTop.nameLen = uint16(nameEnd - nameBegin)
	return e.readFieldType(nameEnd + 1)
}

func (e *Enumerator) readFieldType(typeOffset uint32) fieldType {
	c := e.ctx
	data := e.eventData
	pos := typeOffset

	encoding := eventheadertypes.FieldEncoding(data[pos])
	format := eventheadertypes.FieldFormatDefault
	var tag uint16
	pos++

	if encoding.Chained() {
		if c.metaEnd == pos {
			encoding = readFieldError
		} else {
			format = eventheadertypes.FieldFormat(data[pos])
			pos++
			if format.Chained() {
				if c.metaEnd-pos < 2 {
					encoding = readFieldError
				} else {
					tag = c.byteReader.U16(data[pos:])
					pos += 2
				}
			}
		}
	}

	c.stackTop.nextOffset = pos
	if encoding == readFieldError {
		return fieldType{encoding: readFieldError}
	}
	// The chain flag only signals "a format byte follows" and is fully
	// consumed by this point; the CArray/VArray flags are still needed by
	// nextProperty's IsArray()/IsCArray()/IsVArray() checks, so only the
	// chain bit is stripped here.
	return fieldType{encoding: encoding &^ eventheadertypes.FieldEncodingChainFlag, format: format.Value(), tag: tag}
}

func (e *Enumerator) startArray() bool {
	c := e.ctx
	c.elementSize = 0
	c.itemSizeRaw = 0
	c.dataPosCooked = c.dataPosRaw
	c.itemSizeCooked = 0
	c.setState(StateArrayBegin, subStateArrayBegin)

	switch c.fieldType.encoding.Value() {
	case eventheadertypes.FieldEncodingStruct:
		return true

	case eventheadertypes.FieldEncodingValue8:
		c.elementSize = 1
	case eventheadertypes.FieldEncodingValue16:
		c.elementSize = 2
	case eventheadertypes.FieldEncodingValue32:
		c.elementSize = 4
	case eventheadertypes.FieldEncodingValue64:
		c.elementSize = 8
	case eventheadertypes.FieldEncodingValue128:
		c.elementSize = 16

	case eventheadertypes.FieldEncodingZStringChar8,
		eventheadertypes.FieldEncodingZStringChar16,
		eventheadertypes.FieldEncodingZStringChar32,
		eventheadertypes.FieldEncodingStringLength16Char8,
		eventheadertypes.FieldEncodingStringLength16Char16,
		eventheadertypes.FieldEncodingStringLength16Char32,
		eventheadertypes.FieldEncodingBinaryLength16Char8:
		return true

	case eventheadertypes.FieldEncodingInvalid:
		return c.setErrorState(InvalidData)

	default:
		return c.setErrorState(NotSupported)
	}

	remainingLen := uint32(len(e.eventData)) - c.dataPosRaw
	arrayLen := uint32(c.stackTop.arrayCount) * uint32(c.elementSize)
	if remainingLen < arrayLen {
		return c.setErrorState(InvalidData)
	}

	c.itemSizeCooked = arrayLen
	c.itemSizeRaw = arrayLen
	return true
}

func (e *Enumerator) startStruct() {
	c := e.ctx
	c.elementSize = 0
	c.itemSizeRaw = 0
	c.dataPosCooked = c.dataPosRaw
	c.itemSizeCooked = 0
	c.setState(StateStructBegin, subStateStructBegin)
}

func (e *Enumerator) startValue() bool {
	c := e.ctx
	data := e.eventData
	c.dataPosCooked = c.dataPosRaw
	c.elementSize = 0

	switch c.fieldType.encoding.Value() {
	case eventheadertypes.FieldEncodingValue8:
		return e.startValueFixedLength(1)
	case eventheadertypes.FieldEncodingValue16:
		return e.startValueFixedLength(2)
	case eventheadertypes.FieldEncodingValue32:
		return e.startValueFixedLength(4)
	case eventheadertypes.FieldEncodingValue64:
		return e.startValueFixedLength(8)
	case eventheadertypes.FieldEncodingValue128:
		return e.startValueFixedLength(16)

	case eventheadertypes.FieldEncodingZStringChar8:
		e.startValueZString(1)
	case eventheadertypes.FieldEncodingZStringChar16:
		e.startValueZString(2)
	case eventheadertypes.FieldEncodingZStringChar32:
		e.startValueZString(4)
	case eventheadertypes.FieldEncodingStringLength16Char8,
		eventheadertypes.FieldEncodingBinaryLength16Char8:
		e.startValueString(0)
	case eventheadertypes.FieldEncodingStringLength16Char16:
		e.startValueString(1)
	case eventheadertypes.FieldEncodingStringLength16Char32:
		e.startValueString(2)

	default:
		c.itemSizeCooked = 0
		c.itemSizeRaw = 0
		return c.setErrorState(InvalidData)
	}

	remainingLen := uint32(len(data)) - c.dataPosRaw
	if remainingLen < c.itemSizeRaw {
		c.itemSizeCooked = 0
		c.itemSizeRaw = 0
		return c.setErrorState(InvalidData)
	}

	return true
}

func (e *Enumerator) startValueSimple() {
	e.ctx.dataPosCooked = e.ctx.dataPosRaw
}

func (e *Enumerator) startValueFixedLength(size uint8) bool {
	c := e.ctx
	remainingLen := uint32(len(e.eventData)) - c.dataPosRaw
	c.elementSize = size
	c.itemSizeCooked = uint32(size)
	c.itemSizeRaw = uint32(size)

	if uint32(size) <= remainingLen {
		return true
	}
	c.itemSizeCooked = 0
	c.itemSizeRaw = 0
	return c.setErrorState(InvalidData)
}

// startValueZString scans forward from dataPosRaw for a NUL code unit of
// the given width, without requiring the terminator to be present: an
// unterminated string runs to the end of the event, matching the decoder's
// "no buffering, no extra validation" posture.
func (e *Enumerator) startValueZString(elementSize uint32) {
	c := e.ctx
	data := e.eventData
	n := uint32(len(data))

	pos := c.dataPosRaw
	for pos+elementSize <= n {
		if isZero(data[pos : pos+elementSize]) {
			c.itemSizeCooked = pos - c.dataPosRaw
			c.itemSizeRaw = c.itemSizeCooked + elementSize
			return
		}
		pos += elementSize
	}

	c.itemSizeCooked = n - c.dataPosRaw
	c.itemSizeRaw = n - c.dataPosRaw
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func (e *Enumerator) startValueString(charSizeShift uint32) {
	c := e.ctx
	remaining := uint32(len(e.eventData)) - c.dataPosRaw
	if remaining < 2 {
		c.itemSizeRaw = 2
		return
	}

	c.dataPosCooked = c.dataPosRaw + 2
	cch := uint32(c.byteReader.U16(e.eventData[c.dataPosRaw:]))
	c.itemSizeCooked = cch << charSizeShift
	c.itemSizeRaw = c.itemSizeCooked + 2
}

func (c *DecoderContext) setState(state State, substate subState) {
	c.state = state
	c.substate = substate
}

func (c *DecoderContext) setEndState(state State, substate subState) {
	c.dataPosCooked = c.dataPosRaw
	c.itemSizeRaw = 0
	c.itemSizeCooked = 0
	c.state = state
	c.substate = substate
}

func (c *DecoderContext) setErrorState(err DecodeError) bool {
	c.lastError = err
	c.state = StateError
	c.substate = subStateError
	return false
}
