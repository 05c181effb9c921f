package payment

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PromptGateway asks for the gateway's result on a terminal. The operator
// completes the payment out of band and pastes the payment id and
// signature; an empty payment id cancels.
type PromptGateway struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPromptGateway(in io.Reader, out io.Writer) *PromptGateway {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &PromptGateway{in: br, out: out}
}

func (g *PromptGateway) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	fmt.Fprintf(g.out, "Checkout for plan %s\n", req.PlanName)
	fmt.Fprintf(g.out, "  order:   %s\n", req.OrderID)
	fmt.Fprintf(g.out, "  amount:  %d.%02d %s\n", req.Amount/100, req.Amount%100, req.Currency)
	fmt.Fprintf(g.out, "  key:     %s\n", req.KeyID)
	if req.Email != "" {
		fmt.Fprintf(g.out, "  contact: %s %s\n", req.Email, req.Phone)
	}

	paymentID, err := g.ask(ctx, "Payment id (empty to cancel)")
	if err != nil {
		return nil, err
	}
	if paymentID == "" {
		return nil, ErrCancelled
	}
	signature, err := g.ask(ctx, "Signature")
	if err != nil {
		return nil, err
	}
	if signature == "" {
		return nil, ErrCancelled
	}
	return &CheckoutResult{OrderID: req.OrderID, PaymentID: paymentID, Signature: signature}, nil
}

func (g *PromptGateway) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(g.out, "%s: ", prompt)
	line, err := g.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", ErrCancelled
		}
	}
	return strings.TrimSpace(line), nil
}
