package reader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mccread/internal/caption"
	"mccread/internal/caption/descriptor"
	"mccread/internal/reader"
	"mccread/internal/services"
	"mccread/internal/services/inspector"
)

const (
	mccContent = "File Format=MacCaption_MCC V1.0\n\nUUID=test\n00:00:00:00\tdata\n"

	stream608 = "CEA-608 Channel 1 Decode\n" +
		"00:00:07:00 - {RCL}{R14:C4} \"Hello World\"\n" +
		"00:00:07:09 - {EOC}\n" +
		"00:00:09:02 - {EDM}\n"

	stream708 = "DTVCC Service 1 Decode\n" +
		"00:00:07:09 - {DF0:PopUp-Cntrd:R1-C29:Anchor-UL-V65-H0:Pen-Default:Pr-0:VIS} {SPL:R0-C5} \"Hello World\" {DSW:1}\n" +
		"00:00:09:02 - {DLW:1}\n"

	descriptorContent = "Caption Converter Descriptor\nFrame Rate=30\nDrop Frame=True\n"

	debugContent = "INFO GENERAL [mcc_decode.c:101] - Decoding started\n" +
		"not a debug line\n" +
		"WARN PIPELINE [pipeline.c:55] - Dropped a packet\n"
)

type stubDecoder struct {
	artifacts inspector.Artifacts
	err       error
	gotInput  string
	gotOutput string
}

func (s *stubDecoder) Decode(_ context.Context, inputPath, outputDir string) (inspector.Artifacts, error) {
	s.gotInput = inputPath
	s.gotOutput = outputDir
	return s.artifacts, s.err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// writeArtifacts lays out a realistic decode output directory and returns the
// matching Artifacts value.
func writeArtifacts(t *testing.T, dir string) inspector.Artifacts {
	t.Helper()
	return inspector.Artifacts{
		CEA608:     []string{writeFile(t, filepath.Join(dir, "sample-C1.608"), stream608)},
		CEA708:     []string{writeFile(t, filepath.Join(dir, "sample-S1.708"), stream708)},
		Descriptor: writeFile(t, filepath.Join(dir, "sample.ccd"), descriptorContent),
		Debug:      writeFile(t, filepath.Join(dir, "sample.dbg"), debugContent),
	}
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	return writeFile(t, filepath.Join(dir, "sample.mcc"), mccContent)
}

func TestReadEndToEnd(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	input := writeInput(t, inputDir)
	decoder := &stubDecoder{artifacts: writeArtifacts(t, outputDir)}

	r, err := reader.New(decoder)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	result, err := r.Read(context.Background(), input, outputDir)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	if decoder.gotInput != input || decoder.gotOutput != outputDir {
		t.Fatalf("decoder invoked with %q, %q", decoder.gotInput, decoder.gotOutput)
	}

	formats := result.FormatsPresent()
	if len(formats) != 2 {
		t.Fatalf("formats = %v", formats)
	}

	events := result.TrackEvents(caption.FormatCEA608, "c1")
	if len(events) != 1 {
		t.Fatalf("expected 1 cea608 event, got %d", len(events))
	}
	event := events[0]
	if event.StartUS != 7_307_300 {
		t.Fatalf("start = %d", event.StartUS)
	}
	if event.EndUS == nil || *event.EndUS != 9_075_733 {
		t.Fatalf("end = %v", event.EndUS)
	}
	if event.Text != "Hello World" {
		t.Fatalf("text = %q", event.Text)
	}
	if event.StartTimecode != "00:00:07:09" {
		t.Fatalf("start timecode = %q", event.StartTimecode)
	}
	if event.EndTimecode == nil || *event.EndTimecode != "00:00:09:02" {
		t.Fatalf("end timecode = %v", event.EndTimecode)
	}

	events708 := result.TrackEvents(caption.FormatCEA708, "s1")
	if len(events708) != 1 {
		t.Fatalf("expected 1 cea708 event, got %d", len(events708))
	}
	if events708[0].StartUS != 7_307_300 {
		t.Fatalf("cea708 start = %d", events708[0].StartUS)
	}

	if result.Metadata.FPS < 29.96 || result.Metadata.FPS > 29.98 {
		t.Fatalf("fps = %v", result.Metadata.FPS)
	}
	if !result.Metadata.DropFrame {
		t.Fatal("expected drop frame")
	}
	if result.Metadata.InputFile != input {
		t.Fatalf("input file = %q", result.Metadata.InputFile)
	}
	if result.Metadata.SourceDir != outputDir {
		t.Fatalf("source dir = %q", result.Metadata.SourceDir)
	}
	if len(result.Metadata.OutputFiles) != 4 {
		t.Fatalf("output files = %v", result.Metadata.OutputFiles)
	}

	// Two .dbg entries survive; the malformed middle line is dropped.
	infos := result.Debug(caption.LevelInfo)
	if len(infos) != 1 || infos[0].Message != "Decoding started" {
		t.Fatalf("info debug entries = %+v", infos)
	}
	warns := result.Debug(caption.LevelWarn)
	if len(warns) != 1 {
		t.Fatalf("warn debug entries = %+v", warns)
	}
}

func TestReadAnnotatesLanguages(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	input := writeInput(t, inputDir)
	decoder := &stubDecoder{artifacts: writeArtifacts(t, outputDir)}

	r, err := reader.New(decoder, reader.WithDetector(stubDetector{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	result, err := r.Read(context.Background(), input, outputDir)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if got := result.TrackLanguage(caption.FormatCEA608, "c1"); got != "en" {
		t.Fatalf("language = %q", got)
	}
}

type stubDetector struct{}

func (stubDetector) DetectLanguage(string) (string, bool) { return "en", true }

func TestReadMissingInput(t *testing.T) {
	r, err := reader.New(&stubDecoder{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = r.Read(context.Background(), filepath.Join(t.TempDir(), "absent.mcc"), t.TempDir())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestReadRejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "sample.srt"), mccContent)

	r, _ := reader.New(&stubDecoder{})
	_, err := r.Read(context.Background(), input, t.TempDir())
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReadRejectsMissingMagicHeader(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "sample.mcc"), "Scenarist_SCC V1.0\n")

	r, _ := reader.New(&stubDecoder{})
	_, err := r.Read(context.Background(), input, t.TempDir())
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReadPropagatesDecodeFailure(t *testing.T) {
	input := writeInput(t, t.TempDir())
	decodeErr := services.Wrap(services.ErrExternalTool, "decode", "caption-inspector", "exit status 1", nil)

	r, _ := reader.New(&stubDecoder{err: decodeErr})
	_, err := r.Read(context.Background(), input, t.TempDir())
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestReadMissingDescriptorIsFatal(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	input := writeInput(t, inputDir)
	artifacts := writeArtifacts(t, outputDir)
	artifacts.Descriptor = ""

	r, _ := reader.New(&stubDecoder{artifacts: artifacts})
	_, err := r.Read(context.Background(), input, outputDir)
	if !errors.Is(err, descriptor.ErrMissingDescriptor) {
		t.Fatalf("expected missing descriptor error, got %v", err)
	}
}

func TestReadFPSOverride(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	input := writeInput(t, inputDir)
	decoder := &stubDecoder{artifacts: writeArtifacts(t, outputDir)}

	// Same NTSC family, so the worked example timings still hold.
	r, err := reader.New(decoder, reader.WithFPSOverride(29.97))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	result, err := r.Read(context.Background(), input, outputDir)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if result.Metadata.FPS < 29.96 || result.Metadata.FPS > 29.98 {
		t.Fatalf("fps = %v", result.Metadata.FPS)
	}
}

func TestReadInvalidFPSOverride(t *testing.T) {
	input := writeInput(t, t.TempDir())
	outputDir := t.TempDir()
	decoder := &stubDecoder{artifacts: writeArtifacts(t, outputDir)}

	r, _ := reader.New(decoder, reader.WithFPSOverride(-1))
	_, err := r.Read(context.Background(), input, outputDir)
	if err == nil {
		t.Fatal("expected error for invalid override")
	}
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"plain header", []byte("File Format=MacCaption_MCC V1.0\n"), true},
		{"bom header", append([]byte{0xEF, 0xBB, 0xBF}, []byte("File Format=MacCaption_MCC V1.0\n")...), true},
		{"wrong header", []byte("Scenarist_SCC V1.0\n"), false},
		{"empty", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reader.Detect(tc.content); got != tc.want {
				t.Fatalf("Detect = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewRequiresDecoder(t *testing.T) {
	if _, err := reader.New(nil); err == nil {
		t.Fatal("expected error for nil decoder")
	}
}
