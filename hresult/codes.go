// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hresult

// Result codes. Values match ddraw.h.
const (
	OK Code = 0

	Generic        Code = 0x80004005 // E_FAIL
	InvalidParams  Code = 0x80070057 // E_INVALIDARG
	OutOfMemory    Code = 0x8007000E // E_OUTOFMEMORY
	Unsupported    Code = 0x80004001 // E_NOTIMPL
	NotInitialized Code = 0x800401F0 // CO_E_NOTINITIALIZED
)

const (
	AlreadyInitialized           Code = facility | 5
	CannotAttachSurface          Code = facility | 10
	CannotDetachSurface          Code = facility | 20
	CurrentlyNotAvail            Code = facility | 40
	Exception                    Code = facility | 55
	HeightAlign                  Code = facility | 90
	IncompatiblePrimary          Code = facility | 95
	InvalidCaps                  Code = facility | 100
	InvalidClipList              Code = facility | 110
	InvalidMode                  Code = facility | 120
	InvalidObject                Code = facility | 130
	InvalidPixelFormat           Code = facility | 145
	InvalidRect                  Code = facility | 150
	LockedSurfaces               Code = facility | 160
	No3D                         Code = facility | 170
	NoAlphaHW                    Code = facility | 180
	NoStereoHardware             Code = facility | 181
	NoSurfaceLeft                Code = facility | 182
	NoClipList                   Code = facility | 205
	NoColorConvHW                Code = facility | 210
	NoCooperativeLevelSet        Code = facility | 212
	NoColorKey                   Code = facility | 215
	NoColorKeyHW                 Code = facility | 220
	NoDirectDrawSupport          Code = facility | 222
	NoExclusiveMode              Code = facility | 225
	NoFlipHW                     Code = facility | 230
	NoGDI                        Code = facility | 240
	NoMirrorHW                   Code = facility | 250
	NotFound                     Code = facility | 255
	NoOverlayHW                  Code = facility | 260
	OverlappingRects             Code = facility | 270
	NoRasterOpHW                 Code = facility | 280
	NoRotationHW                 Code = facility | 290
	NoStretchHW                  Code = facility | 310
	Not4BitColor                 Code = facility | 316
	Not4BitColorIndex            Code = facility | 317
	Not8BitColor                 Code = facility | 320
	NoTextureHW                  Code = facility | 330
	NoVSyncHW                    Code = facility | 335
	NoZBufferHW                  Code = facility | 340
	NoZOverlayHW                 Code = facility | 350
	OutOfCaps                    Code = facility | 360
	OutOfVideoMemory             Code = facility | 380
	OverlayCantClip              Code = facility | 382
	OverlayColorKeyOnlyOneActive Code = facility | 384
	PaletteBusy                  Code = facility | 387
	ColorKeyNotSet               Code = facility | 400
	SurfaceAlreadyAttached       Code = facility | 410
	SurfaceAlreadyDependent      Code = facility | 420
	SurfaceBusy                  Code = facility | 430
	CantLockSurface              Code = facility | 435
	SurfaceIsObscured            Code = facility | 440
	SurfaceLost                  Code = facility | 450
	SurfaceNotAttached           Code = facility | 460
	TooBigHeight                 Code = facility | 470
	TooBigSize                   Code = facility | 480
	TooBigWidth                  Code = facility | 490
	UnsupportedFormat            Code = facility | 510
	UnsupportedMask              Code = facility | 520
	InvalidStream                Code = facility | 521
	VerticalBlankInProgress      Code = facility | 537
	WasStillDrawing              Code = facility | 540
	DDSCapsComplexRequired       Code = facility | 542
	XAlign                       Code = facility | 560
	InvalidDirectDrawGUID        Code = facility | 561
	DirectDrawAlreadyCreated     Code = facility | 562
	NoDirectDrawHW               Code = facility | 563
	PrimarySurfaceAlreadyExists  Code = facility | 564
	NoEmulation                  Code = facility | 565
	RegionTooSmall               Code = facility | 566
	ClipperIsUsingHWND           Code = facility | 567
	NoClipperAttached            Code = facility | 568
	NoHWND                       Code = facility | 569
	HWNDSubclassed               Code = facility | 570
	HWNDAlreadySet               Code = facility | 571
	NoPaletteAttached            Code = facility | 572
	NoPaletteHW                  Code = facility | 573
	BltFastCantClip              Code = facility | 574
	NoBltHW                      Code = facility | 575
	NoDDROPSHW                   Code = facility | 576
	OverlayNotVisible            Code = facility | 577
	NoOverlayDest                Code = facility | 578
	InvalidPosition              Code = facility | 579
	NotAOverlaySurface           Code = facility | 580
	ExclusiveModeAlreadySet      Code = facility | 581
	NotFlippable                 Code = facility | 582
	CantDuplicate                Code = facility | 583
	NotLocked                    Code = facility | 584
	CantCreateDC                 Code = facility | 585
	NoDC                         Code = facility | 586
	WrongMode                    Code = facility | 587
	ImplicitlyCreated            Code = facility | 588
	NotPalettized                Code = facility | 589
	UnsupportedMode              Code = facility | 590
	NoMipMapHW                   Code = facility | 591
	InvalidSurfaceType           Code = facility | 592
	NoOptimizeHW                 Code = facility | 600
	NotLoaded                    Code = facility | 601
	NoFocusWindow                Code = facility | 602
	NotOnMipMapSublevel          Code = facility | 603
	DCAlreadyCreated             Code = facility | 620
	NoNonLocalVidMem             Code = facility | 630
	CantPageLock                 Code = facility | 640
	CantPageUnlock               Code = facility | 660
	NotPageLocked                Code = facility | 680
	MoreData                     Code = facility | 690
	Expired                      Code = facility | 691
	TestFinished                 Code = facility | 692
	NewMode                      Code = facility | 693
	D3DNotInitialized            Code = facility | 694
	VideoNotActive               Code = facility | 695
	NoMonitorInformation         Code = facility | 696
	NoDriverSupport              Code = facility | 697
	DeviceDoesntOwnSurface       Code = facility | 699
)

var table = map[Code]Info{
	OK:             {"DD_OK", "the request completed successfully", ClassGeneric},
	Generic:        {"DDERR_GENERIC", "undefined error condition", ClassGeneric},
	InvalidParams:  {"DDERR_INVALIDPARAMS", "one or more parameters are invalid", ClassParam},
	OutOfMemory:    {"DDERR_OUTOFMEMORY", "not enough memory to complete the operation", ClassMemory},
	Unsupported:    {"DDERR_UNSUPPORTED", "the operation is not supported", ClassUnsupported},
	NotInitialized: {"DDERR_NOTINITIALIZED", "the object was not initialized before use", ClassConnection},

	AlreadyInitialized:           {"DDERR_ALREADYINITIALIZED", "the object has already been initialized", ClassConnection},
	CannotAttachSurface:          {"DDERR_CANNOTATTACHSURFACE", "a surface cannot be attached to the requested surface", ClassParam},
	CannotDetachSurface:          {"DDERR_CANNOTDETACHSURFACE", "a surface cannot be detached from the requested surface", ClassParam},
	CurrentlyNotAvail:            {"DDERR_CURRENTLYNOTAVAIL", "no support is currently available", ClassUnsupported},
	Exception:                    {"DDERR_EXCEPTION", "an exception was raised while performing the operation", ClassGeneric},
	HeightAlign:                  {"DDERR_HEIGHTALIGN", "the rectangle height is not a multiple of the required alignment", ClassParam},
	IncompatiblePrimary:          {"DDERR_INCOMPATIBLEPRIMARY", "the primary surface creation request does not match the existing primary", ClassParam},
	InvalidCaps:                  {"DDERR_INVALIDCAPS", "one or more capability bits are incorrect", ClassUnsupported},
	InvalidClipList:              {"DDERR_INVALIDCLIPLIST", "the clip list is not supported", ClassParam},
	InvalidMode:                  {"DDERR_INVALIDMODE", "the requested mode is not supported", ClassMode},
	InvalidObject:                {"DDERR_INVALIDOBJECT", "an invalid object was passed", ClassParam},
	InvalidPixelFormat:           {"DDERR_INVALIDPIXELFORMAT", "the pixel format is invalid", ClassMode},
	InvalidRect:                  {"DDERR_INVALIDRECT", "the rectangle is invalid", ClassParam},
	LockedSurfaces:               {"DDERR_LOCKEDSURFACES", "one or more surfaces are locked", ClassBusy},
	No3D:                         {"DDERR_NO3D", "no 3D hardware or emulation is present", ClassUnsupported},
	NoAlphaHW:                    {"DDERR_NOALPHAHW", "no alpha acceleration hardware is present", ClassUnsupported},
	NoStereoHardware:             {"DDERR_NOSTEREOHARDWARE", "no stereo hardware is present", ClassUnsupported},
	NoSurfaceLeft:                {"DDERR_NOSURFACELEFT", "no hardware is present that supports stereo surfaces", ClassUnsupported},
	NoClipList:                   {"DDERR_NOCLIPLIST", "no clip list is available", ClassParam},
	NoColorConvHW:                {"DDERR_NOCOLORCONVHW", "no color conversion hardware is present", ClassUnsupported},
	NoCooperativeLevelSet:        {"DDERR_NOCOOPERATIVELEVELSET", "the cooperative level has not been set", ClassMode},
	NoColorKey:                   {"DDERR_NOCOLORKEY", "the surface has no color key", ClassParam},
	NoColorKeyHW:                 {"DDERR_NOCOLORKEYHW", "no color key hardware support", ClassUnsupported},
	NoDirectDrawSupport:          {"DDERR_NODIRECTDRAWSUPPORT", "the display driver does not support the device", ClassConnection},
	NoExclusiveMode:              {"DDERR_NOEXCLUSIVEMODE", "the operation requires exclusive mode", ClassMode},
	NoFlipHW:                     {"DDERR_NOFLIPHW", "flipping visible surfaces is not supported", ClassUnsupported},
	NoGDI:                        {"DDERR_NOGDI", "no GDI is present", ClassConnection},
	NoMirrorHW:                   {"DDERR_NOMIRRORHW", "no mirroring hardware is present", ClassUnsupported},
	NotFound:                     {"DDERR_NOTFOUND", "the requested item was not found", ClassParam},
	NoOverlayHW:                  {"DDERR_NOOVERLAYHW", "no overlay hardware is present", ClassUnsupported},
	OverlappingRects:             {"DDERR_OVERLAPPINGRECTS", "source and destination rectangles overlap on the same surface", ClassParam},
	NoRasterOpHW:                 {"DDERR_NORASTEROPHW", "no raster operation hardware is present", ClassUnsupported},
	NoRotationHW:                 {"DDERR_NOROTATIONHW", "no rotation hardware is present", ClassUnsupported},
	NoStretchHW:                  {"DDERR_NOSTRETCHHW", "no stretching hardware is present", ClassUnsupported},
	Not4BitColor:                 {"DDERR_NOT4BITCOLOR", "the surface is not a 4-bit palette surface", ClassMode},
	Not4BitColorIndex:            {"DDERR_NOT4BITCOLORINDEX", "the surface is not a 4-bit indexed palette surface", ClassMode},
	Not8BitColor:                 {"DDERR_NOT8BITCOLOR", "the surface is not an 8-bit palette surface", ClassMode},
	NoTextureHW:                  {"DDERR_NOTEXTUREHW", "no texture mapping hardware is present", ClassUnsupported},
	NoVSyncHW:                    {"DDERR_NOVSYNCHW", "no vertical blank synchronization hardware is present", ClassUnsupported},
	NoZBufferHW:                  {"DDERR_NOZBUFFERHW", "no z-buffer hardware is present", ClassUnsupported},
	NoZOverlayHW:                 {"DDERR_NOZOVERLAYHW", "overlay z-ordering is not supported", ClassUnsupported},
	OutOfCaps:                    {"DDERR_OUTOFCAPS", "the hardware needed is already allocated", ClassBusy},
	OutOfVideoMemory:             {"DDERR_OUTOFVIDEOMEMORY", "not enough display memory to complete the operation", ClassMemory},
	OverlayCantClip:              {"DDERR_OVERLAYCANTCLIP", "the hardware does not support clipped overlays", ClassUnsupported},
	OverlayColorKeyOnlyOneActive: {"DDERR_OVERLAYCOLORKEYONLYONEACTIVE", "only one color key can be active on an overlay", ClassParam},
	PaletteBusy:                  {"DDERR_PALETTEBUSY", "the palette is locked by another thread", ClassBusy},
	ColorKeyNotSet:               {"DDERR_COLORKEYNOTSET", "no source color key has been set", ClassParam},
	SurfaceAlreadyAttached:       {"DDERR_SURFACEALREADYATTACHED", "the surface is already attached", ClassParam},
	SurfaceAlreadyDependent:      {"DDERR_SURFACEALREADYDEPENDENT", "the surface is already a dependency", ClassParam},
	SurfaceBusy:                  {"DDERR_SURFACEBUSY", "the surface is in use", ClassBusy},
	CantLockSurface:              {"DDERR_CANTLOCKSURFACE", "the surface cannot be locked", ClassBusy},
	SurfaceIsObscured:            {"DDERR_SURFACEISOBSCURED", "the surface is obscured", ClassBusy},
	SurfaceLost:                  {"DDERR_SURFACELOST", "the surface memory was released and must be restored", ClassLost},
	SurfaceNotAttached:           {"DDERR_SURFACENOTATTACHED", "the surface is not attached", ClassParam},
	TooBigHeight:                 {"DDERR_TOOBIGHEIGHT", "the requested height is too large", ClassParam},
	TooBigSize:                   {"DDERR_TOOBIGSIZE", "the requested size is too large", ClassParam},
	TooBigWidth:                  {"DDERR_TOOBIGWIDTH", "the requested width is too large", ClassParam},
	UnsupportedFormat:            {"DDERR_UNSUPPORTEDFORMAT", "the pixel format is not supported", ClassMode},
	UnsupportedMask:              {"DDERR_UNSUPPORTEDMASK", "the bitmask in the pixel format is not supported", ClassMode},
	InvalidStream:                {"DDERR_INVALIDSTREAM", "the stream is invalid", ClassParam},
	VerticalBlankInProgress:      {"DDERR_VERTICALBLANKINPROGRESS", "a vertical blank is in progress", ClassBusy},
	WasStillDrawing:              {"DDERR_WASSTILLDRAWING", "the previous operation has not completed", ClassBusy},
	DDSCapsComplexRequired:       {"DDERR_DDSCAPSCOMPLEXREQUIRED", "the surface requires the complex capability", ClassParam},
	XAlign:                       {"DDERR_XALIGN", "the rectangle is not horizontally aligned", ClassParam},
	InvalidDirectDrawGUID:        {"DDERR_INVALIDDIRECTDRAWGUID", "the device GUID is invalid", ClassConnection},
	DirectDrawAlreadyCreated:     {"DDERR_DIRECTDRAWALREADYCREATED", "a device object has already been created for this process", ClassConnection},
	NoDirectDrawHW:               {"DDERR_NODIRECTDRAWHW", "no hardware-only device could be created", ClassConnection},
	PrimarySurfaceAlreadyExists:  {"DDERR_PRIMARYSURFACEALREADYEXISTS", "this process has already created a primary surface", ClassParam},
	NoEmulation:                  {"DDERR_NOEMULATION", "software emulation is not available", ClassUnsupported},
	RegionTooSmall:               {"DDERR_REGIONTOOSMALL", "the clip region is too small", ClassParam},
	ClipperIsUsingHWND:           {"DDERR_CLIPPERISUSINGHWND", "the clipper is already monitoring a window", ClassParam},
	NoClipperAttached:            {"DDERR_NOCLIPPERATTACHED", "no clipper is attached to the surface", ClassParam},
	NoHWND:                       {"DDERR_NOHWND", "no window handle was set for the cooperative level", ClassMode},
	HWNDSubclassed:               {"DDERR_HWNDSUBCLASSED", "the window has been subclassed", ClassMode},
	HWNDAlreadySet:               {"DDERR_HWNDALREADYSET", "the cooperative level window is already set", ClassMode},
	NoPaletteAttached:            {"DDERR_NOPALETTEATTACHED", "no palette is attached to the surface", ClassParam},
	NoPaletteHW:                  {"DDERR_NOPALETTEHW", "no hardware support for 16 or 256 color palettes", ClassUnsupported},
	BltFastCantClip:              {"DDERR_BLTFASTCANTCLIP", "a clipper is attached to a fast blit source", ClassParam},
	NoBltHW:                      {"DDERR_NOBLTHW", "no blitter hardware is present", ClassUnsupported},
	NoDDROPSHW:                   {"DDERR_NODDROPSHW", "no raster operation hardware is present", ClassUnsupported},
	OverlayNotVisible:            {"DDERR_OVERLAYNOTVISIBLE", "the overlay is hidden", ClassParam},
	NoOverlayDest:                {"DDERR_NOOVERLAYDEST", "the overlay has no destination", ClassParam},
	InvalidPosition:              {"DDERR_INVALIDPOSITION", "the overlay position is invalid", ClassParam},
	NotAOverlaySurface:           {"DDERR_NOTAOVERLAYSURFACE", "the surface is not an overlay", ClassParam},
	ExclusiveModeAlreadySet:      {"DDERR_EXCLUSIVEMODEALREADYSET", "exclusive mode is already set", ClassMode},
	NotFlippable:                 {"DDERR_NOTFLIPPABLE", "the surface cannot be flipped", ClassParam},
	CantDuplicate:                {"DDERR_CANTDUPLICATE", "the surface cannot be duplicated", ClassParam},
	NotLocked:                    {"DDERR_NOTLOCKED", "the surface is not locked", ClassParam},
	CantCreateDC:                 {"DDERR_CANTCREATEDC", "a device context could not be created", ClassGeneric},
	NoDC:                         {"DDERR_NODC", "no device context exists for the surface", ClassParam},
	WrongMode:                    {"DDERR_WRONGMODE", "the surface was created in a different mode", ClassMode},
	ImplicitlyCreated:            {"DDERR_IMPLICITLYCREATED", "the surface was created implicitly and cannot be restored", ClassParam},
	NotPalettized:                {"DDERR_NOTPALETTIZED", "the surface is not palette-based", ClassMode},
	UnsupportedMode:              {"DDERR_UNSUPPORTEDMODE", "the display is in an unsupported mode", ClassMode},
	NoMipMapHW:                   {"DDERR_NOMIPMAPHW", "no mipmap texture hardware is present", ClassUnsupported},
	InvalidSurfaceType:           {"DDERR_INVALIDSURFACETYPE", "the surface is of the wrong type", ClassParam},
	NoOptimizeHW:                 {"DDERR_NOOPTIMIZEHW", "optimized surfaces are not supported", ClassUnsupported},
	NotLoaded:                    {"DDERR_NOTLOADED", "the optimized surface has no memory allocated", ClassParam},
	NoFocusWindow:                {"DDERR_NOFOCUSWINDOW", "no focus window is set for device windows", ClassMode},
	NotOnMipMapSublevel:          {"DDERR_NOTONMIPMAPSUBLEVEL", "the operation is not valid on a mipmap sublevel", ClassParam},
	DCAlreadyCreated:             {"DDERR_DCALREADYCREATED", "a device context has already been returned for the surface", ClassBusy},
	NoNonLocalVidMem:             {"DDERR_NONONLOCALVIDMEM", "no non-local video memory is available", ClassMemory},
	CantPageLock:                 {"DDERR_CANTPAGELOCK", "the surface could not be page locked", ClassMemory},
	CantPageUnlock:               {"DDERR_CANTPAGEUNLOCK", "the surface could not be page unlocked", ClassMemory},
	NotPageLocked:                {"DDERR_NOTPAGELOCKED", "the surface is not page locked", ClassParam},
	MoreData:                     {"DDERR_MOREDATA", "more data is available than the buffer can hold", ClassParam},
	Expired:                      {"DDERR_EXPIRED", "the data has expired", ClassGeneric},
	TestFinished:                 {"DDERR_TESTFINISHED", "the mode test has finished", ClassMode},
	NewMode:                      {"DDERR_NEWMODE", "a new mode is being tested", ClassMode},
	D3DNotInitialized:            {"DDERR_D3DNOTINITIALIZED", "the 3D device has not been initialized", ClassConnection},
	VideoNotActive:               {"DDERR_VIDEONOTACTIVE", "the video port is not active", ClassGeneric},
	NoMonitorInformation:         {"DDERR_NOMONITORINFORMATION", "no monitor information is available", ClassMode},
	NoDriverSupport:              {"DDERR_NODRIVERSUPPORT", "the driver does not support mode tests", ClassUnsupported},
	DeviceDoesntOwnSurface:       {"DDERR_DEVICEDOESNTOWNSURFACE", "the surface belongs to another device", ClassParam},
}
