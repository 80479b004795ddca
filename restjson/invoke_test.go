package restjson

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	smithy "github.com/smithykit/runtime"
	smithyhttp "github.com/smithykit/runtime/transport/http"
)

type fakeClientDo struct {
	gotReq *http.Request
	resp   *http.Response
}

func (f *fakeClientDo) Do(r *http.Request) (*http.Response, error) {
	f.gotReq = r
	return f.resp, nil
}

func TestInvoke_RoundTrip(t *testing.T) {
	fake := &fakeClientDo{resp: &http.Response{
		StatusCode: 200,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(`{"name":"gear"}`)),
	}}

	p := &Protocol{}
	out := &getWidgetOutput{}
	err := Invoke(context.Background(), p, fake, &smithy.TypeRegistry{},
		"PUT", "https://example.com/widgets/{id}",
		&getWidgetInput{ID: "abc", Name: "gear"}, out)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	if fake.gotReq == nil {
		t.Fatal("expected the transport handler to be called")
	}
	if fake.gotReq.URL.Path != "/widgets/abc" {
		t.Errorf("expected label substituted by SerializeRequest, got %q", fake.gotReq.URL.Path)
	}
	if out.Name != "gear" {
		t.Errorf("expected name=gear, got %q", out.Name)
	}
}

var _ smithyhttp.ClientDo = (*fakeClientDo)(nil)
