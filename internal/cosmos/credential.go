package cosmos

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

// Credential pairs a token credential with a description that is safe to log.
type Credential struct {
	azcore.TokenCredential
	description string
}

func (c *Credential) String() string { return c.description }

// NewCredential resolves the token credential for auth.
// A service principal is used only when tenant, client and secret are all
// present. Otherwise the DefaultAzureCredential chain applies, which tries in order:
// 1. Environment variables (AZURE_CLIENT_ID, AZURE_CLIENT_SECRET, AZURE_TENANT_ID)
// 2. Workload Identity (for Kubernetes)
// 3. Managed Identity (for Azure VMs, App Service, etc.)
// 4. Azure CLI (for local development)
// 5. Azure Developer CLI
func NewCredential(auth cosmosload.AuthConfig) (*Credential, error) {
	if auth.TenantID != "" && auth.ClientID != "" && auth.ClientSecret != "" {
		cred, err := azidentity.NewClientSecretCredential(auth.TenantID, auth.ClientID, auth.ClientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure credential: %w: %w", cosmosload.ErrConnectionFailed, err)
		}
		return &Credential{
			TokenCredential: cred,
			description:     fmt.Sprintf("AzureServicePrincipal(tenant=%s, client=%s)", auth.TenantID, auth.ClientID),
		}, nil
	}

	var opts *azidentity.DefaultAzureCredentialOptions
	if auth.TenantID != "" {
		opts = &azidentity.DefaultAzureCredentialOptions{TenantID: auth.TenantID}
	}
	cred, err := azidentity.NewDefaultAzureCredential(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure default credential: %w: %w", cosmosload.ErrConnectionFailed, err)
	}
	return &Credential{TokenCredential: cred, description: "AzureDefaultCredential"}, nil
}
