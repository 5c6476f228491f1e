package ddraw

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/gogpu/ddraw/backend"
	"github.com/gogpu/ddraw/hresult"
)

func TestNewConnectsThroughFactory(t *testing.T) {
	m, b := newFakeManager(t)
	if !m.Connected() {
		t.Fatal("New() should connect")
	}
	if m.Backend() != b {
		t.Error("Backend() should return the factory result")
	}
}

func TestConnectErrors(t *testing.T) {
	errNoDevice := hresult.NoDirectDrawHW

	_, err := New(WithBackendFactory(func() (backend.Backend, error) { return nil, errNoDevice }), WithReporter(nil))
	var ce *ConnectionError
	if !errors.As(err, &ce) {
		t.Fatalf("New() error = %v, want *ConnectionError", err)
	}
	if !errors.Is(err, errNoDevice) {
		t.Errorf("New() error = %v, should wrap the device error", err)
	}

	_, err = New(WithBackend("nonexistent"), WithReporter(nil))
	if !errors.Is(err, backend.ErrBackendNotAvailable) {
		t.Errorf("New(nonexistent) error = %v, want ErrBackendNotAvailable", err)
	}

	m, _ := newFakeManager(t)
	err = m.Connect()
	if !errors.As(err, &ce) || !errors.Is(err, ErrAlreadyConnected) {
		t.Errorf("second Connect() error = %v, want ErrAlreadyConnected", err)
	}
}

func TestNegotiateDisplayMode(t *testing.T) {
	tests := []struct {
		name          string
		w, h, bpp     int
		want          bool
		wantFullScr   bool
		wantEnumCalls int
	}{
		{"supported", 640, 480, 16, true, true, 1},
		{"unsupported depth", 640, 480, 24, false, false, 1},
		{"unsupported size", 1920, 1080, 32, false, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, b := newFakeManager(t)
			got, err := m.NegotiateDisplayMode(tt.w, tt.h, tt.bpp)
			if err != nil {
				t.Fatalf("NegotiateDisplayMode() error = %v", err)
			}
			if got != tt.want || m.FullScreen() != tt.wantFullScr {
				t.Errorf("NegotiateDisplayMode() = %v, FullScreen() = %v; want %v, %v",
					got, m.FullScreen(), tt.want, tt.wantFullScr)
			}
			want := backend.DisplayMode{Width: tt.w, Height: tt.h, BitsPerPixel: tt.bpp}
			if m.Mode() != want {
				t.Errorf("Mode() = %v, want %v", m.Mode(), want)
			}
			if len(b.calls) != tt.wantEnumCalls {
				t.Errorf("calls = %v", b.calls)
			}
		})
	}
}

func TestNegotiateDisplayModeFirstMatchWins(t *testing.T) {
	m, b := newFakeManager(t)
	b.modes = []backend.DisplayMode{
		{Width: 640, Height: 480, BitsPerPixel: 16, RefreshRate: 60},
		{Width: 640, Height: 480, BitsPerPixel: 16, RefreshRate: 75},
	}
	ok, err := m.NegotiateDisplayMode(640, 480, 16)
	if err != nil || !ok {
		t.Fatalf("NegotiateDisplayMode() = %v, %v", ok, err)
	}
	if b.visited != 1 {
		t.Errorf("enumeration visited %d modes, want 1", b.visited)
	}
}

func TestNegotiateDisplayModeEnumError(t *testing.T) {
	m, b := newFakeManager(t)
	b.enumErr = hresult.Generic
	ok, err := m.NegotiateDisplayMode(640, 480, 16)
	if ok {
		t.Error("NegotiateDisplayMode() should report no match on error")
	}
	var be *BackendError
	if !errors.As(err, &be) || !errors.Is(err, hresult.Generic) {
		t.Errorf("error = %v, want *BackendError wrapping Generic", err)
	}
}

func TestInitialize(t *testing.T) {
	t.Run("full-screen", func(t *testing.T) {
		m, b := newFakeManager(t)
		if _, err := m.NegotiateDisplayMode(640, 480, 16); err != nil {
			t.Fatal(err)
		}
		if err := m.Initialize(0x1234); err != nil {
			t.Fatalf("Initialize() error = %v", err)
		}
		want := backend.CoopExclusive | backend.CoopFullScreen | backend.CoopAllowReboot
		if len(b.coop) != 1 || b.coop[0] != want {
			t.Errorf("coop levels = %v, want [%v]", b.coop, want)
		}
		if len(b.modeSets) != 1 || b.modeSets[0] != m.Mode() {
			t.Errorf("mode sets = %v", b.modeSets)
		}

		if err := m.Uninitialize(); err != nil {
			t.Fatalf("Uninitialize() error = %v", err)
		}
		if err := m.Uninitialize(); err != nil {
			t.Fatalf("second Uninitialize() error = %v", err)
		}
		if n := countCalls(b.calls, "restore"); n != 1 {
			t.Errorf("restore calls = %d, want 1", n)
		}
	})

	t.Run("windowed", func(t *testing.T) {
		m, b := newFakeManager(t)
		if _, err := m.NegotiateDisplayMode(1920, 1080, 32); err != nil {
			t.Fatal(err)
		}
		if err := m.Initialize(0x1234); err != nil {
			t.Fatalf("Initialize() error = %v", err)
		}
		if len(b.coop) != 1 || b.coop[0] != backend.CoopNormal|backend.CoopAllowReboot {
			t.Errorf("coop levels = %v", b.coop)
		}
		if len(b.modeSets) != 0 {
			t.Errorf("windowed mode should not set a display mode, got %v", b.modeSets)
		}
		if err := m.Uninitialize(); err != nil {
			t.Fatalf("Uninitialize() error = %v", err)
		}
		if n := countCalls(b.calls, "restore"); n != 0 {
			t.Errorf("windowed Uninitialize should not restore, got %d calls", n)
		}
	})
}

func TestInitializeErrors(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(b *fakeBackend)
		wantOp string
		want   error
	}{
		{"cooperative level", func(b *fakeBackend) { b.coopErr = hresult.HWNDAlreadySet }, "set cooperative level", hresult.HWNDAlreadySet},
		{"display mode", func(b *fakeBackend) { b.modeErr = hresult.UnsupportedMode }, "set display mode", hresult.UnsupportedMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reported []string
			m, b := newFakeManager(t, WithReporter(func(op string, err error) { reported = append(reported, op) }))
			tt.setup(b)
			if _, err := m.NegotiateDisplayMode(640, 480, 16); err != nil {
				t.Fatal(err)
			}
			err := m.Initialize(1)
			var me *ModeSetError
			if !errors.As(err, &me) {
				t.Fatalf("Initialize() error = %v, want *ModeSetError", err)
			}
			if me.Op != tt.wantOp || !me.FullScreen || !errors.Is(err, tt.want) {
				t.Errorf("ModeSetError = %+v", me)
			}
			if len(reported) != 1 {
				t.Errorf("reported = %v, want one diagnostic", reported)
			}
		})
	}
}

func TestCreateSurfaceFallback(t *testing.T) {
	req, _ := Capabilities(KindTexture)
	attempts := req.Attempts()

	for n := 0; n <= MaxAttempts; n++ {
		t.Run(fmt.Sprintf("reject %d", n), func(t *testing.T) {
			m, b := newFakeManager(t)
			for i := range n {
				b.createErrs = append(b.createErrs, hresult.Code(uint32(hresult.NoTextureHW)+uint32(i)))
			}

			s := &Surface{}
			_ = s.SetSurfaceType(KindTexture)
			_ = s.SetGeneralOptions(64, 64, 16)
			err := m.CreateSurface(s)

			wantCalls := min(n+1, MaxAttempts)
			if len(b.creates) != wantCalls {
				t.Fatalf("CreateSurface calls = %d, want %d", len(b.creates), wantCalls)
			}
			for i, d := range b.creates {
				if d.Caps != attempts[i].Caps || d.Caps2 != attempts[i].Caps2 {
					t.Errorf("attempt %d caps = %v/%v, want %v/%v",
						i+1, d.Caps, d.Caps2, attempts[i].Caps, attempts[i].Caps2)
				}
			}

			if n < MaxAttempts {
				if err != nil {
					t.Fatalf("CreateSurface() error = %v", err)
				}
				if !s.Created() || s.Attempt() != n+1 {
					t.Errorf("Created() = %v, Attempt() = %d; want true, %d", s.Created(), s.Attempt(), n+1)
				}
				return
			}

			var ne *NegotiationError
			if !errors.As(err, &ne) {
				t.Fatalf("CreateSurface() error = %v, want *NegotiationError", err)
			}
			if ne.Attempts != MaxAttempts || ne.Kind != KindTexture {
				t.Errorf("NegotiationError = %+v", ne)
			}
			last := hresult.Code(uint32(hresult.NoTextureHW) + MaxAttempts - 1)
			if !errors.Is(err, last) {
				t.Errorf("error = %v, want the 4th attempt's error %v", err, last)
			}
			if s.Created() {
				t.Error("failed creation must not mark the surface created")
			}
		})
	}
}

func TestCreateSurfaceDescriptor(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		configure func(s *Surface)
		check     func(t *testing.T, d backend.SurfaceDesc)
	}{
		{
			name: "primary",
			kind: KindPrimary,
			check: func(t *testing.T, d backend.SurfaceDesc) {
				if d.BackBufferCount != 1 || d.Flags&backend.DescWidth != 0 || !d.Format.IsZero() {
					t.Errorf("primary desc = %+v", d)
				}
			},
		},
		{
			name: "chain",
			kind: KindChain,
			configure: func(s *Surface) {
				_ = s.SetGeneralOptions(640, 480, 16)
				_ = s.SetChainOptions(2)
			},
			check: func(t *testing.T, d backend.SurfaceDesc) {
				if d.BackBufferCount != 2 || d.Format.BitCount != 16 || d.Format.G != 0x07E0 {
					t.Errorf("chain desc = %+v", d)
				}
			},
		},
		{
			name: "texture",
			kind: KindTexture,
			configure: func(s *Surface) {
				_ = s.SetGeneralOptions(64, 64, 32)
				_ = s.SetTextureOptions(true)
			},
			check: func(t *testing.T, d backend.SurfaceDesc) {
				if d.Flags&backend.DescTextureStage == 0 || d.TextureStage != 0 || !d.Format.HasAlpha() {
					t.Errorf("texture desc = %+v", d)
				}
			},
		},
		{
			name:      "zbuffer",
			kind:      KindZBuffer,
			configure: func(s *Surface) { _ = s.SetGeneralOptions(64, 64, 15) },
			check: func(t *testing.T, d backend.SurfaceDesc) {
				if d.Format.Z != 0x7FFF || d.Format.BitCount != 15 {
					t.Errorf("zbuffer desc = %+v", d)
				}
			},
		},
		{
			name:      "alpha",
			kind:      KindAlpha,
			configure: func(s *Surface) { _ = s.SetGeneralOptions(32, 32, 8) },
			check: func(t *testing.T, d backend.SurfaceDesc) {
				if d.Flags&backend.DescAlphaBitDepth == 0 || d.AlphaBitDepth != 8 {
					t.Errorf("alpha desc = %+v", d)
				}
			},
		},
		{
			name: "bump map",
			kind: KindBumpMap,
			configure: func(s *Surface) {
				_ = s.SetGeneralOptions(32, 32, 16)
				_ = s.SetBumpMapOptions(true)
			},
			check: func(t *testing.T, d backend.SurfaceDesc) {
				if d.TextureStage != 1 || d.Format.Lum == 0 {
					t.Errorf("bump map desc = %+v", d)
				}
			},
		},
		{
			name: "light map ignores alpha",
			kind: KindLightMap,
			configure: func(s *Surface) {
				_ = s.SetGeneralOptions(32, 32, 32)
				_ = s.SetTextureOptions(true)
			},
			check: func(t *testing.T, d backend.SurfaceDesc) {
				if d.TextureStage != 1 || d.Format.HasAlpha() {
					t.Errorf("light map desc = %+v", d)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, b := newFakeManager(t)
			s := &Surface{}
			_ = s.SetSurfaceType(tt.kind)
			if tt.configure != nil {
				tt.configure(s)
			}
			if err := m.CreateSurface(s); err != nil {
				t.Fatalf("CreateSurface() error = %v", err)
			}
			tt.check(t, b.creates[0])
		})
	}
}

func TestCreateSurfacePreconditions(t *testing.T) {
	created := func(m *Manager) *Surface {
		s := plainSurface(8, 8, 16)
		_ = m.CreateSurface(s)
		return s
	}

	tests := []struct {
		name    string
		surface func(m *Manager) *Surface
		want    error
	}{
		{"nil surface", func(*Manager) *Surface { return nil }, ErrNilSurface},
		{"type not set", func(*Manager) *Surface { return &Surface{} }, ErrTypeNotSet},
		{"already created", created, ErrAlreadyCreated},
		{"missing size", func(*Manager) *Surface {
			s := &Surface{}
			_ = s.SetSurfaceType(KindPlain)
			return s
		}, ErrIncompleteDescriptor},
		{"chain without back buffers", func(*Manager) *Surface {
			s := &Surface{}
			_ = s.SetSurfaceType(KindChain)
			_ = s.SetGeneralOptions(64, 64, 16)
			return s
		}, ErrIncompleteDescriptor},
		{"unsupported depth", func(*Manager) *Surface { return plainSurface(8, 8, 12) }, ErrUnsupportedDepth},
		{"bump map at 8 bits", func(*Manager) *Surface {
			s := &Surface{}
			_ = s.SetSurfaceType(KindBumpMap)
			_ = s.SetGeneralOptions(8, 8, 8)
			return s
		}, ErrUnsupportedDepth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, b := newFakeManager(t)
			s := tt.surface(m)
			before := len(b.creates)

			err := m.CreateSurface(s)
			var pe *PreconditionError
			if !errors.As(err, &pe) || !errors.Is(err, tt.want) {
				t.Fatalf("CreateSurface() error = %v, want PreconditionError wrapping %v", err, tt.want)
			}
			if len(b.creates) != before {
				t.Error("a precondition failure must not reach the device")
			}
		})
	}
}

func TestCreateSurfaceNotConnected(t *testing.T) {
	m, b := newFakeManager(t)
	m.Close()
	err := m.CreateSurface(plainSurface(8, 8, 16))
	if !errors.Is(err, ErrClosed) {
		t.Errorf("CreateSurface() after Close error = %v, want ErrClosed", err)
	}
	if len(b.creates) != 0 {
		t.Error("CreateSurface() after Close reached the device")
	}

	var zero Manager
	if err := zero.CreateSurface(plainSurface(8, 8, 16)); !errors.Is(err, ErrNotConnected) {
		t.Errorf("zero Manager CreateSurface() error = %v, want ErrNotConnected", err)
	}
}

func TestCreateSurfaceDescError(t *testing.T) {
	m, b := newFakeManager(t)
	b.descErr = hresult.InvalidObject

	s := plainSurface(8, 8, 16)
	err := m.CreateSurface(s)
	var be *BackendError
	if !errors.As(err, &be) || !errors.Is(err, hresult.InvalidObject) {
		t.Fatalf("CreateSurface() error = %v, want *BackendError", err)
	}
	if s.Created() {
		t.Error("surface should not be created when its geometry cannot be read")
	}
	if b.surfaces[0].refs != 0 {
		t.Errorf("device surface refs = %d, want 0", b.surfaces[0].refs)
	}
}

func TestCreateSurfaceRealizedGeometry(t *testing.T) {
	m, b := newFakeManager(t)
	b.pitchPad = 64

	s, err := m.NewSurface(KindChain, WithSize(640, 480, 16), WithChainCount(2))
	if err != nil {
		t.Fatalf("NewSurface() error = %v", err)
	}
	if !s.Created() || s.Width() != 640 || s.Height() != 480 {
		t.Errorf("geometry = %dx%d, created %v", s.Width(), s.Height(), s.Created())
	}
	if s.Pitch() != 640*2+64 {
		t.Errorf("Pitch() = %d, want %d", s.Pitch(), 640*2+64)
	}
	if s.Attempt() != 1 {
		t.Errorf("Attempt() = %d, want 1", s.Attempt())
	}
}

func TestTextureStageConflict(t *testing.T) {
	m, b := newFakeManager(t)

	bump, err := m.NewSurface(KindBumpMap, WithSize(32, 32, 16))
	if err != nil {
		t.Fatalf("NewSurface(BumpMap) error = %v", err)
	}
	calls := len(b.creates)

	_, err = m.NewSurface(KindLightMap, WithSize(32, 32, 16))
	if !errors.Is(err, ErrTextureStageConflict) {
		t.Fatalf("NewSurface(LightMap) error = %v, want ErrTextureStageConflict", err)
	}
	if len(b.creates) != calls {
		t.Error("a stage conflict must not reach the device")
	}

	if _, err := m.NewSurface(KindBumpMap, WithSize(32, 32, 16)); err != nil {
		t.Errorf("a second bump map should share the stage, got %v", err)
	}

	bump.Close()
	if _, err := m.NewSurface(KindLightMap, WithSize(32, 32, 16)); !errors.Is(err, ErrTextureStageConflict) {
		t.Errorf("stage still held by the second bump map, got %v", err)
	}
}

func TestTextureStagesOption(t *testing.T) {
	m, b := newFakeManager(t, WithTextureStages(1, 2))
	if _, err := m.NewSurface(KindBumpMap, WithSize(32, 32, 16)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.NewSurface(KindLightMap, WithSize(32, 32, 16)); err != nil {
		t.Fatalf("distinct stages should not conflict, got %v", err)
	}
	if b.creates[1].TextureStage != 2 {
		t.Errorf("light map stage = %d, want 2", b.creates[1].TextureStage)
	}
}

func TestManagerInterface(t *testing.T) {
	m, b := newFakeManager(t)

	h, err := m.Interface()
	if err != nil {
		t.Fatal(err)
	}
	if b.refs != 2 || h.Raw() != 0xD0 {
		t.Errorf("refs = %d, Raw() = %#x", b.refs, h.Raw())
	}
	if !h.Release() || h.Release() {
		t.Error("Release() should succeed exactly once")
	}
	if b.refs != 1 || h.Raw() != 0 || h.Object() != nil {
		t.Errorf("after Release: refs = %d, Raw() = %#x", b.refs, h.Raw())
	}

	base, err := m.BaseInterface()
	if err != nil {
		t.Fatal(err)
	}
	if base.Raw() != 0xD1 || b.refs != 2 {
		t.Errorf("base Raw() = %#x, refs = %d", base.Raw(), b.refs)
	}
	base.Release()

	m.Close()
	if _, err := m.Interface(); !errors.Is(err, ErrClosed) {
		t.Errorf("Interface() after Close error = %v", err)
	}
}

func TestManagerClose(t *testing.T) {
	m, b := newFakeManager(t)
	if _, err := m.NegotiateDisplayMode(640, 480, 16); err != nil {
		t.Fatal(err)
	}
	if err := m.Initialize(1); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if b.refs != 0 {
		t.Errorf("backend refs = %d, want 0", b.refs)
	}
	if !slices.Contains(b.calls, "restore") {
		t.Error("Close() should restore the display mode")
	}
	if err := m.Connect(); !errors.Is(err, ErrClosed) {
		t.Errorf("Connect() after Close error = %v", err)
	}
}

func countCalls(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if c == name {
			n++
		}
	}
	return n
}
