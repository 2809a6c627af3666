package assessment

import "fmt"

// buildPrompt embeds the questionnaire answers verbatim and pins the response
// to a single JSON object with exactly the four output keys.
func buildPrompt(in Input) string {
	additional := in.AdditionalSymptoms
	if additional == "" {
		additional = "None"
	}

	return fmt.Sprintf(`You are a medical AI assistant. Analyze the following symptoms and provide a health assessment:

Symptoms: %s
Pain Level: %s
Duration: %s
Medications Taken: %s
Additional Symptoms: %s

Please provide:
1. Urgency Level (mild/moderate/severe)
2. Confidence Score (0-100)
3. Detailed recommendations
4. Recommended timeline for medical consultation

Respond with a single JSON object with exactly these four keys, and urgencyLevel restricted to "mild", "moderate" or "severe":
{
  "urgencyLevel": "moderate",
  "confidenceScore": 75,
  "recommendations": "Detailed recommendations here...",
  "timeline": "1-2 days"
}`,
		in.Symptoms, in.PainLevel, in.Duration, in.MedicationsTaken, additional)
}
