package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/drkailash/clinic-platform/pkg/logging"
)

type fakeClient struct {
	calls    int
	response string
	err      error

	lastPrompt string
	lastImage  *Image
}

func (f *fakeClient) Generate(_ context.Context, prompt string, img *Image) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastImage = img
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func newCacheForTest(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)
	return NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
}

func TestDiagnoseSuccess(t *testing.T) {
	client := &fakeClient{response: "Likely diagnosis: viral fever"}
	svc := NewService(client, nil, logging.Default(), nil)

	got, err := svc.Diagnose(context.Background(), DiagnoseRequest{Symptoms: "fever"})
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if got != client.response {
		t.Fatalf("response = %q, want vendor output verbatim", got)
	}
	if client.lastImage != nil {
		t.Fatal("image forwarded for a text-only request")
	}
}

func TestDiagnoseEmptySymptoms(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client, nil, logging.Default(), nil)

	if _, err := svc.Diagnose(context.Background(), DiagnoseRequest{Symptoms: "   "}); !errors.Is(err, ErrSymptomsRequired) {
		t.Fatalf("got %v, want ErrSymptomsRequired", err)
	}
	if client.calls != 0 {
		t.Fatal("vendor called for an empty request")
	}
}

func TestDiagnoseVendorFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exhausted")}
	svc := NewService(client, nil, logging.Default(), nil)

	if _, err := svc.Diagnose(context.Background(), DiagnoseRequest{Symptoms: "fever"}); err == nil {
		t.Fatal("expected vendor error to propagate")
	}
}

func TestDiagnoseCachesTextOnlyRequests(t *testing.T) {
	client := &fakeClient{response: "answer"}
	svc := NewService(client, newCacheForTest(t), logging.Default(), nil)
	ctx := context.Background()
	req := DiagnoseRequest{Symptoms: "fever", Language: LanguageEnglish}

	if _, err := svc.Diagnose(ctx, req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	got, err := svc.Diagnose(ctx, req)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if got != "answer" {
		t.Fatalf("cached response = %q", got)
	}
	if client.calls != 1 {
		t.Fatalf("vendor called %d times, want 1", client.calls)
	}
}

func TestDiagnoseImageBypassesCache(t *testing.T) {
	client := &fakeClient{response: "answer"}
	svc := NewService(client, newCacheForTest(t), logging.Default(), nil)
	ctx := context.Background()
	req := DiagnoseRequest{
		Symptoms: "rash",
		Image:    &Image{MIMEType: "image/png", Data: []byte{1, 2, 3}},
	}

	if _, err := svc.Diagnose(ctx, req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := svc.Diagnose(ctx, req); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if client.calls != 2 {
		t.Fatalf("vendor called %d times, want 2 (no caching with images)", client.calls)
	}
	if client.lastImage == nil || client.lastImage.MIMEType != "image/png" {
		t.Fatalf("image not forwarded: %+v", client.lastImage)
	}
}

func TestDiagnoseLanguageChangesPrompt(t *testing.T) {
	client := &fakeClient{response: "answer"}
	svc := NewService(client, nil, logging.Default(), nil)
	ctx := context.Background()

	if _, err := svc.Diagnose(ctx, DiagnoseRequest{Symptoms: "fever"}); err != nil {
		t.Fatalf("english: %v", err)
	}
	english := client.lastPrompt

	if _, err := svc.Diagnose(ctx, DiagnoseRequest{Symptoms: "fever", Language: LanguageHindiRoman}); err != nil {
		t.Fatalf("hindi-roman: %v", err)
	}
	if client.lastPrompt == english {
		t.Fatal("hindi-roman prompt identical to english prompt")
	}
}
