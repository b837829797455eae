package wasmview_test

import (
	"context"
	"encoding/binary"
	"reflect"
	"slices"
	"testing"
	"time"
	"unsafe"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/introspect"
	"github.com/wippyai/introspect/errors"
	"github.com/wippyai/introspect/examples/cats"
	"github.com/wippyai/introspect/examples/cats/catinfo"
	"github.com/wippyai/introspect/registry"
	"github.com/wippyai/introspect/wasmview"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory"
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory"
	0x02, 0x00, // kind: memory, index 0
}

func instantiate(t *testing.T) api.Module {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	mod, err := rt.Instantiate(ctx, memoryWASM)
	if err != nil {
		t.Fatalf("failed to instantiate: %v", err)
	}
	return mod
}

func linearMemory(t *testing.T) wasmview.Memory {
	t.Helper()
	mem, err := wasmview.ExportedMemory(instantiate(t), "memory")
	if err != nil {
		t.Fatalf("ExportedMemory: %v", err)
	}
	return mem
}

func TestExportedMemory(t *testing.T) {
	mod := instantiate(t)

	mem, err := wasmview.ExportedMemory(mod, "memory")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mem.Size() != 65536 {
		t.Errorf("size: got %d, want 65536", mem.Size())
	}

	_, err = wasmview.ExportedMemory(mod, "heap")
	if !errors.Is(err, &errors.Error{Phase: errors.PhaseMemory, Kind: errors.KindNotFound}) {
		t.Errorf("missing export: got %v", err)
	}
	_, err = wasmview.ExportedMemory(nil, "memory")
	if !errors.Is(err, &errors.Error{Phase: errors.PhaseMemory, Kind: errors.KindInvalidInput}) {
		t.Errorf("nil module: got %v", err)
	}
}

func TestRecordMeow(t *testing.T) {
	def, err := wasmview.Record(introspect.MirrorStruct(catinfo.Meow{}))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	rec, ok := def.Kind.(*wit.Record)
	if !ok {
		t.Fatalf("kind: got %T, want *wit.Record", def.Kind)
	}

	want := []struct {
		name string
		typ  wit.Type
	}{
		{"purr-level", wit.S32{}},
		{"scratch-couch", wit.S64{}},
	}
	if len(rec.Fields) != len(want) {
		t.Fatalf("fields: got %d, want %d", len(rec.Fields), len(want))
	}
	for i, w := range want {
		if rec.Fields[i].Name != w.name {
			t.Errorf("field %d name: got %q, want %q", i, rec.Fields[i].Name, w.name)
		}
		if reflect.TypeOf(rec.Fields[i].Type) != reflect.TypeOf(w.typ) {
			t.Errorf("field %d type: got %T, want %T", i, rec.Fields[i].Type, w.typ)
		}
	}
}

func TestWitType(t *testing.T) {
	tests := []struct {
		goType  reflect.Type
		want    wit.Type
		wantErr bool
	}{
		{reflect.TypeFor[bool](), wit.Bool{}, false},
		{reflect.TypeFor[int8](), wit.S8{}, false},
		{reflect.TypeFor[uint16](), wit.U16{}, false},
		{reflect.TypeFor[cats.Mood](), wit.S8{}, false},
		{reflect.TypeFor[time.Duration](), wit.S64{}, false},
		{reflect.TypeFor[float32](), wit.F32{}, false},
		{reflect.TypeFor[string](), wit.String{}, false},
		{reflect.TypeFor[*int](), nil, true},
		{reflect.TypeFor[[]byte](), nil, true},
		{reflect.TypeFor[map[string]int](), nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.goType.String(), func(t *testing.T) {
			got, err := wasmview.WitType(tc.goType)
			if tc.wantErr {
				if !errors.Is(err, &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindUnsupported}) {
					t.Errorf("got %v, want unsupported", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reflect.TypeOf(got) != reflect.TypeOf(tc.want) {
				t.Errorf("got %T, want %T", got, tc.want)
			}
		})
	}
}

type gap struct {
	A int32
	b int32
	C int32
}

type named struct {
	Name string
	ID   uint32
}

type nested struct {
	Tag   uint8
	Inner struct {
		X uint8
		Y uint64
	}
	Pad [3]uint16
}

type switches struct {
	On  bool
	Pad uint8
}

type panel struct {
	Main switches
	Rows [2]bool
}

func TestCheck(t *testing.T) {
	reg := registry.New()

	meowLayout, err := wasmview.Check(introspect.MirrorStruct(catinfo.Meow{}))
	if err != nil {
		t.Fatalf("Meow: unexpected error: %v", err)
	}
	if !slices.Equal(meowLayout.Offsets, []uint32{0, 8}) {
		t.Errorf("Meow offsets: got %v, want [0 8]", meowLayout.Offsets)
	}
	if meowLayout.Size != 16 || meowLayout.Align != 8 {
		t.Errorf("Meow size/align: got %d/%d, want 16/8", meowLayout.Size, meowLayout.Align)
	}

	tests := []struct {
		name string
		typ  reflect.Type
		want errors.Kind
	}{
		{"nested", reflect.TypeFor[nested](), ""},
		{"hidden field shifts offsets", reflect.TypeFor[gap](), errors.KindLayoutMismatch},
		{"string sizes differ", reflect.TypeFor[named](), errors.KindTypeMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := reg.Struct(tc.typ)
			if err != nil {
				t.Fatalf("Struct: %v", err)
			}
			_, err = wasmview.Check(s)
			if tc.want == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, &errors.Error{Phase: errors.PhaseLayout, Kind: tc.want}) {
				t.Errorf("got %v, want %s", err, tc.want)
			}
		})
	}
}

func TestViewLoadStore(t *testing.T) {
	mem := linearMemory(t)

	v, err := wasmview.NewView[cats.Meow](mem)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}

	raw := make([]byte, 16)
	binary.LittleEndian.PutUint32(raw[0:], 7)
	binary.LittleEndian.PutUint32(raw[4:], 0xdeadbeef)
	binary.LittleEndian.PutUint64(raw[8:], uint64(3*time.Second))
	if !mem.Write(64, raw) {
		t.Fatal("write failed")
	}

	m, err := v.Load(64)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := cats.NewMeow(7, 0, 3*time.Second); m != want {
		t.Errorf("Load: got %+v, want %+v", m, want)
	}

	src := cats.NewMeow(9, 4, time.Minute)
	if err := v.Store(128, &src); err != nil {
		t.Fatalf("Store: %v", err)
	}
	data, _ := mem.Read(128, 16)
	if got := binary.LittleEndian.Uint32(data[0:]); got != 9 {
		t.Errorf("stored purr: got %d, want 9", got)
	}
	if got := binary.LittleEndian.Uint32(data[4:]); got != 0 {
		t.Errorf("hidden field written: got %d", got)
	}
	if got := time.Duration(binary.LittleEndian.Uint64(data[8:])); got != time.Minute {
		t.Errorf("stored scratch: got %v, want %v", got, time.Minute)
	}

	purr, err := wasmview.LoadField[catinfo.MeowPurrLevel, cats.Meow, int32](v, 128)
	if err != nil || purr != 9 {
		t.Errorf("LoadField: got %d, %v", purr, err)
	}
	scratch, err := v.Field(128, "ScratchCouch")
	if err != nil || scratch != time.Minute {
		t.Errorf("Field: got %v, %v", scratch, err)
	}
	if _, err := v.Field(128, "hairballs"); !errors.Is(err, &errors.Error{Phase: errors.PhaseMemory, Kind: errors.KindNotFound}) {
		t.Errorf("hidden field: got %v", err)
	}
}

func TestViewLoadAll(t *testing.T) {
	mem := linearMemory(t)
	v, err := wasmview.NewView[cats.Meow](mem, wasmview.WithStruct(introspect.MirrorStruct(catinfo.Meow{})))
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}

	want := []cats.Meow{
		cats.NewMeow(1, 0, time.Second),
		cats.NewMeow(2, 0, 2*time.Second),
		cats.NewMeow(3, 0, 3*time.Second),
	}
	base := uint32(1024)
	for i := range want {
		if err := v.Store(base+uint32(i)*v.Layout().Size, &want[i]); err != nil {
			t.Fatalf("Store %d: %v", i, err)
		}
	}

	got, err := v.LoadAll(base, len(want))
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestViewBounds(t *testing.T) {
	mem := linearMemory(t)
	v, err := wasmview.NewView[cats.Meow](mem)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	oob := &errors.Error{Phase: errors.PhaseMemory, Kind: errors.KindOutOfBounds}
	if !mem.Write(4, []byte{42, 0, 0, 0, 0, 0, 0, 0}) {
		t.Fatal("write failed")
	}

	tests := []struct {
		name string
		run  func() error
	}{
		{"load past end", func() error { _, err := v.Load(65536 - 8); return err }},
		{"load at end", func() error { _, err := v.Load(65536); return err }},
		{"store past end", func() error { m := cats.NewMeow(1, 0, 0); return v.Store(65530, &m) }},
		{"load all past end", func() error { _, err := v.LoadAll(65536-32, 3); return err }},
		{"field past end", func() error { _, err := v.Field(65534, "PurrLevel"); return err }},
		{"field wraps", func() error { _, err := v.Field(0xFFFFFFFC, "ScratchCouch"); return err }},
		{"load field wraps", func() error {
			_, err := wasmview.LoadField[catinfo.MeowScratchCouch, cats.Meow, time.Duration](v, 0xFFFFFFFC)
			return err
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, oob) {
				t.Errorf("got %v, want out of bounds", err)
			}
		})
	}

	if _, err := v.Load(65536 - 16); err != nil {
		t.Errorf("last record: unexpected error: %v", err)
	}
}

func TestNewViewErrors(t *testing.T) {
	mem := linearMemory(t)

	if _, err := wasmview.NewView[cats.Meow](nil); !errors.Is(err, &errors.Error{Phase: errors.PhaseMemory, Kind: errors.KindInvalidInput}) {
		t.Errorf("nil memory: got %v", err)
	}

	wrong := introspect.NewAnyStruct(reflect.TypeFor[cats.Yarn](), introspect.KindStruct, "cats.Yarn", nil, nil)
	if _, err := wasmview.NewView[cats.Meow](mem, wasmview.WithStruct(wrong)); !errors.Is(err, &errors.Error{Phase: errors.PhaseMemory, Kind: errors.KindTypeMismatch}) {
		t.Errorf("wrong descriptor: got %v", err)
	}

	if _, err := wasmview.NewView[named](mem, wasmview.WithRegistry(registry.New())); !errors.Is(err, &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindTypeMismatch}) {
		t.Errorf("string field: got %v", err)
	}

	if _, err := wasmview.NewView[gap](mem, wasmview.WithRegistry(registry.New())); !errors.Is(err, &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindLayoutMismatch}) {
		t.Errorf("gap: got %v", err)
	}
}

func TestViewNormalizesBools(t *testing.T) {
	mem := linearMemory(t)
	reg := registry.New()

	sv, err := wasmview.NewView[switches](mem, wasmview.WithRegistry(reg))
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	if !mem.Write(32, []byte{2, 7}) {
		t.Fatal("write failed")
	}
	sw, err := sv.Load(32)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sw != (switches{On: true, Pad: 7}) {
		t.Errorf("Load: got %+v", sw)
	}
	on, err := sv.Field(32, "On")
	if err != nil || on != true {
		t.Errorf("Field: got %v, %v", on, err)
	}

	pv, err := wasmview.NewView[panel](mem, wasmview.WithRegistry(reg))
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	if !mem.Write(48, []byte{0xff, 0, 0x80, 3}) {
		t.Fatal("write failed")
	}
	p, err := pv.Load(48)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := (panel{Main: switches{On: true}, Rows: [2]bool{true, true}}); p != want {
		t.Errorf("Load: got %+v, want %+v", p, want)
	}
	raw := *(*[4]byte)(unsafe.Pointer(&p))
	if raw != [4]byte{1, 0, 1, 1} {
		t.Errorf("bool bytes: got %v", raw)
	}
}
