package e2e

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

const (
	issuerPrefix   = "/api/v1/issuer"
	verifierPrefix = "/api/v1/verifier"
)

// RegisterSteps registers all step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^the issuer-verifier service is running$`, tc.serviceIsRunning)

	// Schema steps
	ctx.Step(`^I create a schema "([^"]*)" of type "([^"]*)" requiring "([^"]*)"$`, tc.createSchema)
	ctx.Step(`^I save the schema id$`, tc.saveSchemaID)
	ctx.Step(`^I fetch the saved schema$`, tc.fetchSavedSchema)
	ctx.Step(`^I delete the saved schema$`, tc.deleteSavedSchema)
	ctx.Step(`^I ask whether a schema of type "([^"]*)" exists$`, tc.schemaExists)

	// Issuance steps
	ctx.Step(`^I create an offering of type "([^"]*)" for recipient "([^"]*)"$`, tc.createTargetedOffering)
	ctx.Step(`^I create an offering of type "([^"]*)" without a credential subject$`, tc.createOfferingWithoutSubject)
	ctx.Step(`^I save the offering id$`, tc.saveOfferingID)
	ctx.Step(`^I start DID authentication for "([^"]*)"$`, tc.startAuthentication)
	ctx.Step(`^I answer the challenge$`, tc.answerChallenge)
	ctx.Step(`^I exchange the authorization code for a token$`, tc.exchangeCode)
	ctx.Step(`^I claim the saved offering with the bearer token$`, tc.claimOffering)

	// Verifier steps
	ctx.Step(`^I request a validator credential for address "([^"]*)"$`, tc.requestValidatorCredential)
	ctx.Step(`^I request a validator credential through the legacy route with body "([^"]*)"$`, tc.requestLegacyValidator)
	ctx.Step(`^I render a QR code for "([^"]*)"$`, tc.renderQRCode)
	ctx.Step(`^I validate the credential "([^"]*)"$`, tc.validateCredential)

	// Assertion steps
	ctx.Step(`^the response status should be (\d+)$`, tc.responseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.responseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, tc.responseFieldShouldEqual)
	ctx.Step(`^the response field "([^"]*)" should start with "([^"]*)"$`, tc.responseFieldShouldStartWith)
}

func (tc *TestContext) serviceIsRunning(context.Context) error {
	if err := tc.GET("/health/ready"); err != nil {
		return err
	}
	return tc.responseStatusShouldBe(context.Background(), 200)
}

func (tc *TestContext) createSchema(_ context.Context, name, schemaType, required string) error {
	fields := strings.Split(required, ",")
	properties := make(map[string]any, len(fields))
	for _, f := range fields {
		properties[f] = map[string]any{"type": "string"}
	}
	return tc.POST(issuerPrefix+"/schema", map[string]any{
		"name":           name,
		"type":           schemaType,
		"properties":     properties,
		"requiredFields": fields,
	})
}

func (tc *TestContext) saveSchemaID(context.Context) error {
	id, err := tc.StringField("id")
	tc.SchemaID = id
	return err
}

func (tc *TestContext) fetchSavedSchema(context.Context) error {
	return tc.GET(issuerPrefix + "/schema/" + tc.SchemaID)
}

func (tc *TestContext) deleteSavedSchema(context.Context) error {
	return tc.DELETE(issuerPrefix + "/schema/" + tc.SchemaID)
}

func (tc *TestContext) schemaExists(_ context.Context, schemaType string) error {
	return tc.GET(issuerPrefix + "/schema/type/" + schemaType + "/exists")
}

func (tc *TestContext) createTargetedOffering(_ context.Context, credentialType, did string) error {
	return tc.POST(issuerPrefix+"/offering", map[string]any{
		"type":              credentialType,
		"credentialSubject": map[string]any{"email": "holder@example.com"},
		"recipientDid":      did,
	})
}

func (tc *TestContext) createOfferingWithoutSubject(_ context.Context, credentialType string) error {
	return tc.POST(issuerPrefix+"/offering", map[string]any{"type": credentialType})
}

func (tc *TestContext) saveOfferingID(context.Context) error {
	id, err := tc.StringField("id")
	tc.OfferingID = id
	return err
}

func (tc *TestContext) startAuthentication(_ context.Context, did string) error {
	if err := tc.POST(issuerPrefix+"/authorize", map[string]any{"recipientDid": did}); err != nil {
		return err
	}
	challenge, err := tc.StringField("challenge")
	tc.Challenge = challenge
	return err
}

func (tc *TestContext) answerChallenge(context.Context) error {
	if err := tc.POST(issuerPrefix+"/authorize/verify", map[string]any{
		"challenge":       tc.Challenge,
		"signedChallenge": "signed:" + tc.Challenge,
	}); err != nil {
		return err
	}
	code, err := tc.StringField("authorization_code")
	tc.AuthorizationCode = code
	return err
}

func (tc *TestContext) exchangeCode(context.Context) error {
	if err := tc.POST(issuerPrefix+"/token", map[string]any{"authorizationCode": tc.AuthorizationCode}); err != nil {
		return err
	}
	token, err := tc.StringField("access_token")
	tc.AccessToken = token
	return err
}

func (tc *TestContext) claimOffering(context.Context) error {
	return tc.POSTWithHeaders(issuerPrefix+"/issue-credential/"+tc.OfferingID, map[string]any{},
		map[string]string{"Authorization": "Bearer " + tc.AccessToken})
}

func (tc *TestContext) requestValidatorCredential(_ context.Context, address string) error {
	return tc.POST(verifierPrefix+"/validator-credential", map[string]any{"validatorAddress": address})
}

func (tc *TestContext) requestLegacyValidator(_ context.Context, body string) error {
	return tc.POST("/api/validator/create", rawJSON(body))
}

func (tc *TestContext) renderQRCode(_ context.Context, url string) error {
	return tc.POST(verifierPrefix+"/qr", map[string]any{"offeringUrl": url})
}

func (tc *TestContext) validateCredential(_ context.Context, credential string) error {
	return tc.POST(verifierPrefix+"/validate", map[string]any{"credential": credential})
}

func (tc *TestContext) responseStatusShouldBe(_ context.Context, expected int) error {
	if tc.LastResponse == nil {
		return fmt.Errorf("no response received")
	}
	if tc.LastResponse.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, tc.LastResponse.StatusCode, tc.LastResponseBody)
	}
	return nil
}

func (tc *TestContext) responseShouldContain(_ context.Context, text string) error {
	if !strings.Contains(string(tc.LastResponseBody), text) {
		return fmt.Errorf("response does not contain %q: %s", text, tc.LastResponseBody)
	}
	return nil
}

func (tc *TestContext) responseFieldShouldEqual(_ context.Context, path, expected string) error {
	res, err := tc.Field(path)
	if err != nil {
		return err
	}
	if res.String() != expected {
		return fmt.Errorf("field %q: expected %q, got %q", path, expected, res.String())
	}
	return nil
}

func (tc *TestContext) responseFieldShouldStartWith(_ context.Context, path, prefix string) error {
	res, err := tc.Field(path)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(res.String(), prefix) {
		return fmt.Errorf("field %q does not start with %q", path, prefix)
	}
	return nil
}

// rawJSON lets feature files pass a literal body; single quotes stand in for
// double quotes.
type rawJSON string

func (r rawJSON) MarshalJSON() ([]byte, error) {
	return []byte(strings.ReplaceAll(string(r), "'", `"`)), nil
}
