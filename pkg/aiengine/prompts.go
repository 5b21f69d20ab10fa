package aiengine

import "fmt"

func analysisPrompt(text string) string {
	return fmt.Sprintf(`You are a legal assistant AI. Analyze the following legal document and return:
1. A short executive summary (max 5 lines).
2. A list of key clauses (title and short explanation).
3. A list of any potential red flags or legal risks.

Document:
"""
%s
"""

Respond in JSON format with keys: summary, clauses (list of objects with title/content), red_flags (list of strings).`, text)
}

func questionPrompt(text, question string) string {
	return fmt.Sprintf(`You are a legal assistant AI.

Document:
"""
%s
"""

Question:
"""
%s
"""

Answer the user's question clearly and precisely, based on the document above. Maximum 10 lines.`, text, question)
}
