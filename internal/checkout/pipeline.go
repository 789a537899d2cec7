package checkout

import (
	"context"
	"fmt"

	"github.com/nikolayk812/bagcheckout/internal/checkout/steps"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
	"golang.org/x/text/currency"
)

// Deps are the collaborators of the checkout steps.
type Deps struct {
	Store      port.BagStore
	Catalog    port.ProductCatalog
	Intents    port.PaymentIntents
	Transactor port.Transactor
	Policy     domain.DeliveryPolicy
	Currency   currency.Unit
}

type Pipeline struct {
	steps []steps.Step
}

func NewPipeline(deps Deps) (Pipeline, error) {
	var p Pipeline

	if err := deps.Policy.Validate(); err != nil {
		return p, fmt.Errorf("policy.Validate: %w", err)
	}

	pSteps, err := buildSteps(deps)
	if err != nil {
		return p, fmt.Errorf("buildSteps: %w", err)
	}

	return Pipeline{steps: pSteps}, nil
}

// Run stops at the first failing step.
func (p Pipeline) Run(ctx context.Context, state *steps.State) error {
	for idx, step := range p.steps {
		if err := step.Run(ctx, state); err != nil {
			return fmt.Errorf("step.Run[%d][%s]: %w", idx, step.Name(), err)
		}
	}

	return nil
}

// StepNames lists the steps in the order they run.
func (p Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		names = append(names, step.Name())
	}
	return names
}

func buildSteps(deps Deps) ([]steps.Step, error) {
	var results []steps.Step

	results = append(results, steps.NewValidateCustomer())

	step1, err := steps.NewPriceBag(deps.Store, deps.Catalog, deps.Policy)
	if err != nil {
		return nil, fmt.Errorf("steps.NewPriceBag: %w", err)
	}
	results = append(results, step1)

	step2, err := steps.NewCreatePaymentIntent(deps.Intents, deps.Currency)
	if err != nil {
		return nil, fmt.Errorf("steps.NewCreatePaymentIntent: %w", err)
	}
	results = append(results, step2)

	step3, err := steps.NewPersistOrder(deps.Transactor)
	if err != nil {
		return nil, fmt.Errorf("steps.NewPersistOrder: %w", err)
	}
	results = append(results, step3)

	step4, err := steps.NewClearBag(deps.Store)
	if err != nil {
		return nil, fmt.Errorf("steps.NewClearBag: %w", err)
	}
	results = append(results, step4)

	return results, nil
}
