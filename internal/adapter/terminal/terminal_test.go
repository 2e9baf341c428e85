package terminal_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/api-sage/card-banking-system/internal/adapter/repository/memory"
	"github.com/api-sage/card-banking-system/internal/adapter/terminal"
	"github.com/api-sage/card-banking-system/internal/usecase/services"
)

const testIIN = "400000"

type bankUnderTest struct {
	cards     *memory.CardRepository
	transfers *memory.TransferRepository
	cardSvc   *services.CardService
	authSvc   *services.AuthService
	txSvc     *services.TransactionService
}

func newBank() *bankUnderTest {
	cards := memory.NewCardRepository()
	transfers := memory.NewTransferRepository(cards)
	return &bankUnderTest{
		cards:     cards,
		transfers: transfers,
		cardSvc:   services.NewCardService(cards, testIIN),
		authSvc:   services.NewAuthService(cards, testIIN),
		txSvc:     services.NewTransactionService(cards, transfers, testIIN),
	}
}

// runScript feeds the given lines to a fresh terminal over the shared store
// and returns everything it printed.
func (b *bankUnderTest) runScript(t *testing.T, lines ...string) string {
	t.Helper()

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer

	term := terminal.New(in, &out, b.cardSvc, b.authSvc, b.txSvc)
	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("terminal run failed: %v", err)
	}

	return out.String()
}

// issuedCredentials pulls the card number and PIN out of a create-account
// transcript.
func issuedCredentials(t *testing.T, transcript string) (string, string) {
	t.Helper()

	lines := strings.Split(transcript, "\n")
	var number, pin string
	for i, line := range lines {
		switch strings.TrimSpace(line) {
		case "Your card number:":
			number = strings.TrimSpace(lines[i+1])
		case "Your card PIN:":
			pin = strings.TrimSpace(lines[i+1])
		}
	}
	if number == "" || pin == "" {
		t.Fatalf("transcript missing issued credentials:\n%s", transcript)
	}
	return number, pin
}

func TestCreateAccountPrintsCardAndPIN(t *testing.T) {
	bank := newBank()

	transcript := bank.runScript(t, "1", "0")
	if !strings.Contains(transcript, "Your card has been created") {
		t.Fatalf("transcript missing creation banner:\n%s", transcript)
	}

	number, pin := issuedCredentials(t, transcript)
	if len(number) != 16 {
		t.Errorf("printed card number %q, want 16 digits", number)
	}
	if len(pin) != 4 {
		t.Errorf("printed PIN %q, want 4 digits", pin)
	}
	if !strings.Contains(transcript, "Bye!") {
		t.Errorf("transcript missing farewell:\n%s", transcript)
	}
}

func TestLoginDepositBalanceAndLogout(t *testing.T) {
	bank := newBank()
	number, pin := issuedCredentials(t, bank.runScript(t, "1", "0"))

	transcript := bank.runScript(t,
		"2", number, pin, // log in
		"2", "500", // add income
		"1",      // balance
		"5", "0", // log out, exit
	)

	for _, want := range []string{
		"You have successfully logged in!",
		"Income was added!",
		"Balance: 500",
		"You have successfully logged out!",
		"Bye!",
	} {
		if !strings.Contains(transcript, want) {
			t.Errorf("transcript missing %q:\n%s", want, transcript)
		}
	}
}

func TestLoginRejectionMessage(t *testing.T) {
	bank := newBank()
	number, pin := issuedCredentials(t, bank.runScript(t, "1", "0"))

	wrongPIN := "0000"
	if wrongPIN == pin {
		wrongPIN = "0001"
	}

	transcript := bank.runScript(t, "2", number, wrongPIN, "0")
	if !strings.Contains(transcript, "Wrong card number or PIN!") {
		t.Errorf("transcript missing rejection:\n%s", transcript)
	}
}

func TestTransferFlowMessages(t *testing.T) {
	bank := newBank()
	senderNumber, senderPIN := issuedCredentials(t, bank.runScript(t, "1", "0"))
	recipientNumber, _ := issuedCredentials(t, bank.runScript(t, "1", "0"))

	badChecksum := mutateLastDigit(recipientNumber)

	transcript := bank.runScript(t,
		"2", senderNumber, senderPIN,
		"2", "100", // fund the sender
		"3", badChecksum, "30", // checksum failure
		"3", recipientNumber, "500", // not enough money
		"3", recipientNumber, "30", // success
		"1",
		"0",
	)

	for _, want := range []string{
		"Probably you made a mistake in the card number.",
		"Not enough money!",
		"Success!",
		"Balance: 70",
	} {
		if !strings.Contains(transcript, want) {
			t.Errorf("transcript missing %q:\n%s", want, transcript)
		}
	}
}

func TestTransferToMissingCard(t *testing.T) {
	bank := newBank()
	number, pin := issuedCredentials(t, bank.runScript(t, "1", "0"))

	transcript := bank.runScript(t,
		"2", number, pin,
		"3", "4000009999999983", "10",
		"0",
	)

	if !strings.Contains(transcript, "Such a card does not exist.") {
		t.Errorf("transcript missing missing-card message:\n%s", transcript)
	}
}

func TestCloseAccountEndsSession(t *testing.T) {
	bank := newBank()
	number, pin := issuedCredentials(t, bank.runScript(t, "1", "0"))

	transcript := bank.runScript(t, "2", number, pin, "4", "0")
	if !strings.Contains(transcript, "The account has been closed!") {
		t.Errorf("transcript missing closure message:\n%s", transcript)
	}

	// The deleted card can no longer log in.
	transcript = bank.runScript(t, "2", number, pin, "0")
	if !strings.Contains(transcript, "Wrong card number or PIN!") {
		t.Errorf("transcript missing rejection after closure:\n%s", transcript)
	}
}

func TestInvalidMenuSelectionReprompts(t *testing.T) {
	bank := newBank()

	transcript := bank.runScript(t, "7", "0")
	if strings.Count(transcript, "1. Create an account") < 2 {
		t.Errorf("menu not reprinted after invalid selection:\n%s", transcript)
	}
}

func mutateLastDigit(number string) string {
	last := number[len(number)-1]
	if last == '9' {
		last = '0'
	} else {
		last++
	}
	return number[:len(number)-1] + string(last)
}
