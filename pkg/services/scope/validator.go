// Package scope validates the subscription an audit run targets before any
// resources are enumerated.
package scope

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
)

// Validator confirms the caller can read the target subscription and
// resolves its display name.
type Validator interface {
	Validate(ctx context.Context, subscriptionID string) (string, error)
}

type subscriptionValidator struct {
	client *armsubscriptions.Client
}

func NewValidator(cred azcore.TokenCredential) (Validator, error) {
	client, err := armsubscriptions.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}
	return &subscriptionValidator{client: client}, nil
}

func (v *subscriptionValidator) Validate(ctx context.Context, subscriptionID string) (string, error) {
	if subscriptionID == "" {
		return "", fmt.Errorf("subscription ID is required")
	}

	sub, err := v.client.Get(ctx, subscriptionID, nil)
	if err != nil {
		return "", fmt.Errorf("subscription %s is not readable with the current credentials: %w", subscriptionID, err)
	}

	name := subscriptionID
	if sub.DisplayName != nil {
		name = *sub.DisplayName
	}
	return name, nil
}
