package restjson

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	smithy "github.com/smithykit/runtime"
	"github.com/smithykit/runtime/auth"
	"github.com/smithykit/runtime/sigv4"
	"github.com/smithykit/runtime/sigv4/credentials"
	smithyhttp "github.com/smithykit/runtime/transport/http"
	"github.com/smithykit/runtime/traits"
)

func idSchema() *smithy.Schema {
	target := smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "String"}, smithy.ShapeTypeString, nil, nil)
	return smithy.NewMember("id", target, &traits.HTTPLabel{})
}

func nameSchema() *smithy.Schema {
	target := smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "String"}, smithy.ShapeTypeString, nil, nil)
	return smithy.NewMember("name", target)
}

type getWidgetInput struct {
	ID   string
	Name string
}

func (in *getWidgetInput) Serialize(s smithy.ShapeSerializer) {
	s.WriteString(idSchema(), in.ID)
	s.WriteString(nameSchema(), in.Name)
}

func widgetOutputSchema() *smithy.Schema {
	return smithy.NewStructure(smithy.ShapeID{Namespace: "test", Name: "GetWidgetOutput"}, smithy.ShapeTypeStructure, nil, []smithy.StructureMember{
		{Schema: nameSchema(), Required: true},
	})
}

type getWidgetOutput struct {
	Name string
}

func (out *getWidgetOutput) Deserialize(d smithy.ShapeDeserializer) error {
	return smithy.ReadStruct(d, widgetOutputSchema(), func(m *smithy.Schema) error {
		if m.ID.Member == "name" {
			return d.ReadString(m, &out.Name)
		}
		return nil
	})
}

func newSigV4TestScheme() (smithyhttp.AuthScheme, *auth.Option, auth.IdentityResolverOptions) {
	scheme := smithyhttp.NewSigV4Scheme(&smithyhttp.SigV4Signer{Signer: sigv4.New()})
	opt := smithyhttp.NewSigV4Option(func(p *smithyhttp.SigV4Properties) {
		p.SigningName = "widgets"
		p.SigningRegion = "us-west-2"
	})
	resolvers := testIdentityResolverOptions{
		smithyhttp.SchemeIDSigV4: sigv4.StaticIdentityResolver{
			Identity: &sigv4.Identity{Credentials: credentials.Credentials{
				AccessKeyID:     "AKID",
				SecretAccessKey: "SECRET",
			}},
		},
	}
	return scheme, opt, resolvers
}

type testIdentityResolverOptions map[string]auth.IdentityResolver

func (r testIdentityResolverOptions) GetIdentityResolver(schemeID string) auth.IdentityResolver {
	return r[schemeID]
}

func TestProtocol_SerializeRequest_BindsLabelBodyAndSigns(t *testing.T) {
	scheme, opt, resolvers := newSigV4TestScheme()
	p := &Protocol{Scheme: scheme, AuthOption: opt, IdentityOptions: resolvers}

	req := &smithyhttp.Request{Request: &http.Request{
		Method: "PUT",
		URL:    &url.URL{Path: "/widgets/{id}"},
		Header: http.Header{},
	}}

	if err := p.SerializeRequest(context.Background(), &getWidgetInput{ID: "abc", Name: "gear"}, req); err != nil {
		t.Fatalf("SerializeRequest: %v", err)
	}

	if req.URL.Path != "/widgets/abc" {
		t.Errorf("expected label substituted, got %q", req.URL.Path)
	}
	if req.Header.Get("Content-Type") != "application/json" {
		t.Errorf("expected json content type, got %q", req.Header.Get("Content-Type"))
	}
	if req.Header.Get("Authorization") == "" {
		t.Errorf("expected SigV4 Authorization header to be set")
	}

	body, err := io.ReadAll(req.GetStream())
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), `"name":"gear"`) {
		t.Errorf("expected body to carry unbound member, got %q", body)
	}
}

func TestProtocol_DeserializeResponse(t *testing.T) {
	p := &Protocol{}
	resp := &smithyhttp.Response{Response: &http.Response{
		StatusCode: 200,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(`{"name":"gear"}`)),
	}}

	out := &getWidgetOutput{}
	if err := p.DeserializeResponse(context.Background(), &smithy.TypeRegistry{}, resp, out); err != nil {
		t.Fatalf("DeserializeResponse: %v", err)
	}
	if out.Name != "gear" {
		t.Errorf("expected name=gear, got %q", out.Name)
	}
}

func TestProtocol_DeserializeResponse_UnmodeledError(t *testing.T) {
	p := &Protocol{}
	resp := &smithyhttp.Response{Response: &http.Response{
		StatusCode: 400,
		Header:     http.Header{"X-Amzn-Errortype": []string{"ValidationException:http://..."}},
		Body:       io.NopCloser(strings.NewReader(`{"message":"bad"}`)),
	}}

	err := p.DeserializeResponse(context.Background(), &smithy.TypeRegistry{}, resp, &getWidgetOutput{})
	var unmodeled *UnmodeledError
	if err == nil {
		t.Fatal("expected error")
	}
	if !asUnmodeled(err, &unmodeled) {
		t.Fatalf("expected *UnmodeledError, got %T", err)
	}
	if unmodeled.Code != "ValidationException" {
		t.Errorf("expected code stripped of URI suffix, got %q", unmodeled.Code)
	}
}

func asUnmodeled(err error, out **UnmodeledError) bool {
	e, ok := err.(*UnmodeledError)
	if ok {
		*out = e
	}
	return ok
}
