package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/api-sage/card-banking-system/internal/adapter/terminal/models"
	"github.com/api-sage/card-banking-system/internal/commons"
	"github.com/api-sage/card-banking-system/internal/logger"
	"github.com/api-sage/card-banking-system/internal/usecase/service_interfaces"
)

const bankMenu = `1. Create an account
2. Log into account
0. Exit`

const cardMenu = `1. Balance
2. Add income
3. Do transfer
4. Close account
5. Log out
0. Exit`

// Terminal drives the interactive menu loop over an injected reader and
// writer pair, so a session can be scripted in tests.
type Terminal struct {
	in    *bufio.Scanner
	out   io.Writer
	cards service_interfaces.CardService
	auth  service_interfaces.AuthService
	txs   service_interfaces.TransactionService
}

func New(
	in io.Reader,
	out io.Writer,
	cards service_interfaces.CardService,
	auth service_interfaces.AuthService,
	txs service_interfaces.TransactionService,
) *Terminal {
	return &Terminal{
		in:    bufio.NewScanner(in),
		out:   out,
		cards: cards,
		auth:  auth,
		txs:   txs,
	}
}

// Run executes the top-level menu until the customer exits or input ends.
func (t *Terminal) Run(ctx context.Context) error {
	for {
		t.println(bankMenu)

		choice, ok := t.readLine()
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			if err := t.createAccount(ctx); err != nil {
				return err
			}
		case "2":
			exit, err := t.logIn(ctx)
			if err != nil {
				return err
			}
			if exit {
				t.println("\nBye!")
				return nil
			}
		case "0":
			t.println("\nBye!")
			return nil
		default:
			t.println("")
		}
	}
}

func (t *Terminal) createAccount(ctx context.Context) error {
	resp, err := t.cards.CreateCard(ctx)
	if err != nil {
		return fmt.Errorf("create card: %w", err)
	}

	t.println("\nYour card has been created")
	t.println("Your card number:")
	t.println(resp.Data.CardNumber)
	t.println("Your card PIN:")
	t.println(resp.Data.PIN)
	t.println("")
	return nil
}

// logIn authenticates the customer and, on success, runs the account session.
// The returned bool reports whether the customer chose to exit the bank
// entirely rather than just logging out.
func (t *Terminal) logIn(ctx context.Context) (bool, error) {
	number, ok := t.prompt("\nEnter your card number:")
	if !ok {
		return true, nil
	}
	pin, ok := t.prompt("Enter your PIN:")
	if !ok {
		return true, nil
	}

	resp, err := t.auth.Login(ctx, models.LoginRequest{CardNumber: number, PIN: pin})
	if err != nil {
		if errors.Is(err, commons.ErrInvalidCredentials) {
			t.println("\nWrong card number or PIN!\n")
			return false, nil
		}
		return false, fmt.Errorf("log in: %w", err)
	}

	t.println("\nYou have successfully logged in!\n")
	return t.accountSession(ctx, resp.Data.AccountID)
}

func (t *Terminal) accountSession(ctx context.Context, accountID string) (bool, error) {
	for {
		t.println(cardMenu)

		choice, ok := t.readLine()
		if !ok {
			return true, nil
		}

		switch choice {
		case "1":
			if err := t.showBalance(ctx, accountID); err != nil {
				return false, err
			}
		case "2":
			if err := t.addIncome(ctx, accountID); err != nil {
				return false, err
			}
		case "3":
			if err := t.doTransfer(ctx, accountID); err != nil {
				return false, err
			}
		case "4":
			if err := t.closeAccount(ctx, accountID); err != nil {
				return false, err
			}
			return false, nil
		case "5":
			t.println("\nYou have successfully logged out!\n")
			return false, nil
		case "0":
			return true, nil
		default:
			t.println("")
		}
	}
}

func (t *Terminal) showBalance(ctx context.Context, accountID string) error {
	resp, err := t.txs.Balance(ctx, accountID)
	if err != nil {
		return fmt.Errorf("fetch balance: %w", err)
	}

	t.println(fmt.Sprintf("\nBalance: %s\n", models.FormatAmount(resp.Data.Balance)))
	return nil
}

func (t *Terminal) addIncome(ctx context.Context, accountID string) error {
	text, ok := t.prompt("\nEnter income:")
	if !ok {
		return nil
	}

	amount, err := models.ParseAmount(text)
	if err != nil {
		t.println(fmt.Sprintf("%s\n", err.Error()))
		return nil
	}

	if _, err := t.txs.Deposit(ctx, models.DepositRequest{AccountID: accountID, Amount: amount}); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}

	t.println("Income was added!\n")
	return nil
}

func (t *Terminal) doTransfer(ctx context.Context, accountID string) error {
	number, ok := t.prompt("\nTransfer\nEnter your card number:")
	if !ok {
		return nil
	}

	text, ok := t.prompt("Enter how much money you want to transfer:")
	if !ok {
		return nil
	}

	amount, err := models.ParseAmount(text)
	if err != nil {
		t.println(fmt.Sprintf("%s\n", err.Error()))
		return nil
	}

	_, err = t.txs.Transfer(ctx, models.TransferRequest{
		DebitAccountID:   accountID,
		CreditCardNumber: number,
		Amount:           amount,
	})
	switch {
	case err == nil:
		t.println("Success!\n")
	case errors.Is(err, commons.ErrInvalidChecksum):
		t.println("Probably you made a mistake in the card number.")
		t.println("Please try again!\n")
	case errors.Is(err, commons.ErrRecordNotFound):
		t.println("Such a card does not exist.\n")
	case errors.Is(err, commons.ErrInsufficientBalance):
		t.println("Not enough money!\n")
	default:
		return fmt.Errorf("transfer: %w", err)
	}

	return nil
}

func (t *Terminal) closeAccount(ctx context.Context, accountID string) error {
	if _, err := t.txs.CloseAccount(ctx, accountID); err != nil {
		return fmt.Errorf("close account: %w", err)
	}

	t.println("\nThe account has been closed!\n")
	return nil
}

func (t *Terminal) prompt(message string) (string, bool) {
	t.println(message)
	return t.readLine()
}

func (t *Terminal) readLine() (string, bool) {
	if !t.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}

func (t *Terminal) println(message string) {
	if _, err := fmt.Fprintln(t.out, message); err != nil {
		logger.Error("terminal write failed", err, nil)
	}
}
