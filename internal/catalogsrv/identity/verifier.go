// Package identity gates write endpoints behind decentralized-identity
// signature verification. Handlers consume only the verifier's verdict.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

// Verifier decides whether a JWS proves control of the claimed DID.
type Verifier interface {
	Verify(ctx context.Context, did, signed string) apperrors.Error
}

// CeramicVerifier verifies a JWS against the verification key published
// in the DID document, resolved through the configured identity service.
type CeramicVerifier struct {
	resolverURL string
	http        *http.Client
}

type Option func(*CeramicVerifier)

func WithHTTPClient(c *http.Client) Option {
	return func(v *CeramicVerifier) {
		v.http = c
	}
}

func NewCeramicVerifier(resolverURL string, opts ...Option) *CeramicVerifier {
	v := &CeramicVerifier{
		resolverURL: strings.TrimSuffix(resolverURL, "/"),
		http:        &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify parses the JWS, requires its signing key id (query-stripped) to
// equal the claimed DID, then checks the signature against the DID
// document's verification key.
func (v *CeramicVerifier) Verify(ctx context.Context, did, signed string) apperrors.Error {
	msg, err := jws.Parse([]byte(signed))
	if err != nil {
		return ErrVerification.Err(err)
	}
	sigs := msg.Signatures()
	if len(sigs) == 0 {
		return ErrVerification.Err(fmt.Errorf("jws carries no signature"))
	}
	headers := sigs[0].ProtectedHeaders()
	kid := headers.KeyID()
	if strings.SplitN(kid, "?", 2)[0] != did {
		log.Ctx(ctx).Info().Str("did", did).Str("kid", kid).Msg("jws key id does not match claimed did")
		return ErrJWSMismatch
	}

	key, aerr := v.resolveKey(ctx, did, kid)
	if aerr != nil {
		return aerr
	}
	if _, err := jws.Verify([]byte(signed), jws.WithKey(headers.Algorithm(), key)); err != nil {
		return ErrJWSMismatch.Err(err)
	}
	return nil
}

type resolutionResponse struct {
	DIDDocument struct {
		VerificationMethod []struct {
			ID           string          `json:"id"`
			PublicKeyJwk json.RawMessage `json:"publicKeyJwk"`
		} `json:"verificationMethod"`
	} `json:"didDocument"`
}

// resolveKey fetches the DID document and returns the verification key
// matching kid, falling back to the document's first key.
func (v *CeramicVerifier) resolveKey(ctx context.Context, did, kid string) (jwk.Key, apperrors.Error) {
	u := fmt.Sprintf("%s/1.0/identifiers/%s", v.resolverURL, url.PathEscape(did))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, ErrVerification.Err(err)
	}
	resp, err := v.http.Do(req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("did", did).Msg("did resolution failed")
		return nil, ErrVerification.Err(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ErrVerification.Err(fmt.Errorf("did resolution returned status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrVerification.Err(err)
	}
	var resolution resolutionResponse
	if err := json.Unmarshal(body, &resolution); err != nil {
		return nil, ErrVerification.Err(err)
	}

	methods := resolution.DIDDocument.VerificationMethod
	if len(methods) == 0 {
		return nil, ErrVerification.Err(fmt.Errorf("did document has no verification method"))
	}
	keyJSON := methods[0].PublicKeyJwk
	for _, m := range methods {
		if m.ID == kid && len(m.PublicKeyJwk) > 0 {
			keyJSON = m.PublicKeyJwk
			break
		}
	}
	if len(keyJSON) == 0 {
		return nil, ErrVerification.Err(fmt.Errorf("verification method carries no JWK"))
	}
	key, err := jwk.ParseKey(keyJSON)
	if err != nil {
		return nil, ErrVerification.Err(err)
	}
	return key, nil
}
