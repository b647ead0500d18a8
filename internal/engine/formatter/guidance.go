package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/irahardianto/codereview/internal/engine/failure"
)

// KeyURL is where users create a new Gemini API key.
const KeyURL = "https://aistudio.google.com/app/apikey"

// Guidance returns the user-facing markdown message for a failed review.
func Guidance(err error) string {
	var fe *failure.Error
	if !errors.As(err, &fe) {
		return fmt.Sprintf("❌ **Error**: %v", err)
	}

	switch fe.Kind {
	case failure.EmptyInput:
		return "❌ Please provide some code to review."
	case failure.InputTooShort, failure.InputTooLong:
		return fmt.Sprintf("❌ **Error**: %s", fe.Detail)
	case failure.MissingCredential, failure.InvalidCredentialFormat, failure.ConnectivityFailure:
		return keyErrorBanner(fe)
	case failure.ModelUnavailable:
		return "❌ **API Error**: Gemini model not available. Please check your API key and restart the application."
	case failure.UpstreamFailure:
		return upstreamGuidance(fe)
	case failure.EmptyModelResponse:
		return "❌ **Error**: Failed to generate code review: the model returned an empty response. Please try again."
	}
	return fmt.Sprintf("❌ **Error**: %s", fe.Error())
}

func upstreamGuidance(fe *failure.Error) string {
	switch fe.Reason {
	case failure.ReasonCredentialRejected:
		return "❌ **API Key Invalid**: Your Gemini API key is not working.\n\n" +
			"Please:\n" +
			"1. Get a new API key from " + KeyURL + "\n" +
			"2. Update your .env file\n" +
			"3. Restart the application"
	case failure.ReasonQuotaExhausted:
		return "❌ **Quota Exceeded**: The Gemini API rejected the request because the quota for this key is used up. Wait a moment or check your plan."
	case failure.ReasonTimeout:
		return "❌ **Timeout**: The Gemini API did not answer in time. Try a shorter snippet or raise `CODEREVIEW_TIMEOUT`."
	case failure.ReasonModelNotFound:
		return "❌ **Model Not Found**: The configured model is not available for this key. Check `CODEREVIEW_MODEL`."
	}
	return fmt.Sprintf("❌ **Error**: Failed to generate code review: %s", fe.Detail)
}

func keyErrorBanner(fe *failure.Error) string {
	var b strings.Builder
	b.WriteString("❌ **API Key Error**: ")
	switch {
	case fe.Kind == failure.ConnectivityFailure && fe.Reason == failure.ReasonCredentialRejected:
		b.WriteString("API key is invalid or expired.")
	case fe.Kind == failure.ConnectivityFailure:
		fmt.Fprintf(&b, "Failed to initialize Gemini API: %s", fe.Detail)
	default:
		b.WriteString(fe.Detail)
	}
	b.WriteString("\n\nPlease ensure your API key is valid:\n")
	b.WriteString("1. Go to " + KeyURL + "\n")
	b.WriteString("2. Create a new API key\n")
	b.WriteString("3. Update your .env file: `GEMINI_API_KEY=your_new_key`\n")
	b.WriteString("4. Restart the application")
	return b.String()
}

// readyBanner announces a usable model.
const readyBanner = "✅ **Code Review Agent Ready!**\n\n" +
	"Send me any code and I'll provide a comprehensive review including:\n" +
	"• Code summary and functionality\n" +
	"• Best practices analysis\n" +
	"• Issues and improvements\n" +
	"• Security recommendations\n" +
	"• Quality rating (1-10)"

// Banner returns the session greeting: ready when initErr is nil, otherwise
// the reason no model is available.
func Banner(initErr error) string {
	if initErr == nil {
		return readyBanner
	}
	var fe *failure.Error
	if errors.As(initErr, &fe) && fe.Kind.IsCredential() {
		return keyErrorBanner(fe)
	}
	return fmt.Sprintf("❌ **API Key Error**: Gemini model not initialized: %v", initErr)
}
