package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

// ZeptoMail API payload
type mailRequest struct {
	From     mailAddress     `json:"from"`
	To       []mailRecipient `json:"to"`
	Subject  string          `json:"subject"`
	HtmlBody string          `json:"htmlbody"`
}

type mailAddress struct {
	Address string `json:"address"`
}

type mailRecipient struct {
	Email mailNamedAddress `json:"email_address"`
}

type mailNamedAddress struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// SendPledgeEmail notifies a campaign creator that a pledge came in.
// Best effort: callers log the error and move on.
func SendPledgeEmail(to, toName, campaignName, backerName string, amount float64) error {
	subject := fmt.Sprintf("New pledge to %s", campaignName)
	body := fmt.Sprintf(
		"<p>%s pledged $%.2f to your campaign <strong>%s</strong>.</p>",
		backerName, amount, campaignName,
	)
	return sendEmail(to, toName, subject, body)
}

// sendEmail delivers an HTML email through the ZeptoMail HTTP API.
func sendEmail(to, toName, subject, body string) error {
	apiURL := os.Getenv("ZEPTO_API_URL") // e.g. https://api.zeptomail.com/v1.1/email
	apiKey := os.Getenv("ZEPTO_API_KEY")
	from := os.Getenv("EMAIL_FROM")

	if apiURL == "" || apiKey == "" || from == "" {
		return fmt.Errorf("missing required email config")
	}

	payload := mailRequest{
		From: mailAddress{Address: from},
		To: []mailRecipient{
			{Email: mailNamedAddress{Address: to, Name: toName}},
		},
		Subject:  subject,
		HtmlBody: body,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zeptomail API error: %s", resp.Status)
	}

	log.Printf("Email successfully sent to %s", to)
	return nil
}
