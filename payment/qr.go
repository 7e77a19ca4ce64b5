package payment

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

const qrImageBase = "https://img.vietqr.io/image"

// BankConfig identifies the bank transfer recipient rendered into the QR code.
type BankConfig struct {
	BankCode      string
	AccountNumber string
	AccountName   string
	Template      string
}

// QRImageURL builds the URL of a scannable bank transfer QR image for an
// order. The amount is rounded to the nearest whole currency unit and the
// order id is embedded verbatim as the transfer memo, which is what the
// reconciliation process matches against incoming transfer descriptions.
//
// The result is a pure function of its inputs: the same order id, amount and
// bank config always produce a byte-identical URL.
func QRImageURL(bank BankConfig, orderID string, amount float64) string {
	query := url.Values{}
	query.Set("amount", strconv.FormatInt(int64(math.Round(amount)), 10))
	query.Set("addInfo", orderID)
	query.Set("accountName", bank.AccountName)

	return fmt.Sprintf("%s/%s-%s-%s.png?%s",
		qrImageBase, bank.BankCode, bank.AccountNumber, bank.Template, query.Encode())
}
