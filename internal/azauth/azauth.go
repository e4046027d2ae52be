// Package azauth resolves the Azure credential used for the assessment.
//
// Resolution order:
//  1. Azure CLI session (az login) — the most common case for operators
//  2. DefaultAzureCredential chain (environment SPN, managed identity, ...)
//
// Each candidate credential is smoke-tested with a token request against the
// ARM scope before it is accepted, so a stale az session falls through to the
// default chain instead of failing mid-scan.
package azauth

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// Credential holds a resolved Azure credential and how it was obtained.
type Credential struct {
	TokenCredential azcore.TokenCredential
	Method          string // "cli" or "default"
}

// Options configures the authentication flow.
type Options struct {
	TenantID string // optional Azure AD tenant hint for the CLI credential
	Verbose  bool   // log each attempted method
}

// logf is indirected so the resolver stays silent in tests.
var logf = func(format string, args ...interface{}) {}

// SetLogf installs a logging callback for verbose auth output.
func SetLogf(fn func(format string, args ...interface{})) {
	if fn != nil {
		logf = fn
	}
}

// Resolve attempts to authenticate to Azure, trying the CLI session first
// and falling back to the DefaultAzureCredential chain.
func Resolve(ctx context.Context, opts Options) (*Credential, error) {
	if opts.Verbose {
		logf("trying Azure CLI credential")
	}
	cliCred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
		TenantID: opts.TenantID,
	})
	if err == nil {
		if err := testCredential(ctx, cliCred); err == nil {
			return &Credential{TokenCredential: cliCred, Method: "cli"}, nil
		} else if opts.Verbose {
			logf("Azure CLI credential failed: %v", err)
		}
	}

	if opts.Verbose {
		logf("trying DefaultAzureCredential chain")
	}
	defaultCred, err := azidentity.NewDefaultAzureCredential(nil)
	if err == nil {
		if err := testCredential(ctx, defaultCred); err == nil {
			return &Credential{TokenCredential: defaultCred, Method: "default"}, nil
		} else if opts.Verbose {
			logf("DefaultAzureCredential failed: %v", err)
		}
	}

	return nil, &AuthError{TenantID: opts.TenantID}
}

// testCredential verifies the credential can obtain a token.
func testCredential(ctx context.Context, cred azcore.TokenCredential) error {
	_, err := cred.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{"https://management.azure.com/.default"},
	})
	return err
}

// AuthError is returned when no credential method succeeded. Its message
// includes setup instructions for the common credential sources.
type AuthError struct {
	TenantID string
}

func (e *AuthError) Error() string {
	var sb strings.Builder
	sb.WriteString("Azure authentication failed: no valid credential found.\n\n")
	sb.WriteString("Use ONE of these methods:\n\n")

	sb.WriteString("━━━ Method 1: Azure CLI ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	if e.TenantID != "" {
		sb.WriteString(fmt.Sprintf("  az login --tenant %s\n\n", e.TenantID))
	} else {
		sb.WriteString("  az login\n\n")
	}

	sb.WriteString("━━━ Method 2: Service Principal (CI/CD & automation) ━━━━━━━━━━━\n")
	sb.WriteString("  $env:AZURE_TENANT_ID = \"<tenant-id>\"\n")
	sb.WriteString("  $env:AZURE_CLIENT_ID = \"<app-id>\"\n")
	sb.WriteString("  $env:AZURE_CLIENT_SECRET = \"<secret>\"\n\n")

	sb.WriteString("━━━ Required permissions ━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	sb.WriteString("  • Reader on every subscription to assess\n")
	sb.WriteString("    (virtual networks, subnets, route tables, network interfaces)\n")

	return sb.String()
}
