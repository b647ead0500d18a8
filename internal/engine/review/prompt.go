package review

import "strings"

// codePlaceholder marks where the snippet goes in promptTemplate.
const codePlaceholder = "{code}"

// promptTemplate shapes the model's output. The review text is passed through
// unparsed, so the sections here are a request to the model, not a format we read.
const promptTemplate = "\n" +
	`You are a senior software engineer and expert code reviewer with 15+ years of experience.

Please provide a comprehensive code review with the following structure:

## 🔍 **CODE ANALYSIS**
1. **Summary**: What does this code do?
2. **Algorithm Complexity**: Time and space complexity analysis
3. **Architecture**: Overall design and structure assessment

## ✅ **STRENGTHS**
- List what the code does well
- Best practices followed
- Good design patterns used

## ⚠️ **ISSUES IDENTIFIED**
- **Security**: Any security vulnerabilities (with line numbers)
- **Performance**: Inefficiencies or bottlenecks (with line numbers)
- **Style**: Code style violations (with line numbers)
- **Logic**: Potential bugs or edge cases (with line numbers)

## 🚀 **IMPROVEMENT SUGGESTIONS**
1. **Refactoring**: How to improve code structure
2. **Performance**: Optimization opportunities
3. **Security**: Security hardening recommendations
4. **Testing**: What tests should be added

## 📊 **QUALITY METRICS**
- **Overall Quality**: X/10
- **Security**: X/10
- **Performance**: X/10
- **Maintainability**: X/10
- **Readability**: X/10

## 🎯 **PRIORITY ACTIONS**
List the top 3 most important improvements to implement first.

---

CODE TO REVIEW:
` + "```" + `
{code}
` + "```" + `

Please provide detailed, actionable feedback with specific examples and code snippets where helpful.
`

// BuildPrompt substitutes the snippet verbatim into the review template.
func BuildPrompt(snippet string) string {
	return strings.Replace(promptTemplate, codePlaceholder, snippet, 1)
}
