package prompt

// GenerateTest is the prompt used to generate unit tests for a single
// function. The annotations/docstring variables receive a "none" sentinel
// rather than being omitted so the prompt shape stays deterministic.
const GenerateTest = `You are an expert {{language}} developer. Generate robust unit tests for the following function in the given file:
- Function name: {{function_name}}
- Arguments: {{args}}
- Type annotations: {{annotations}}
- Docstring: {{docstring}}

Here is the full file context for reference:
{{file_content}}

Ensure the tests follow these best practices:
- The Arrange-Act-Assert pattern.
- One logical assertion per test case.
- Include edge cases (e.g., empty inputs, boundary values, invalid inputs).
- Use parameterized tests for multiple input scenarios.
- Mock external dependencies where applicable.
- Write meaningful assertions that validate behavior, even if the code implementation does not currently comply.
- Ensure the unit tests are well-designed, regardless of code quality.
`

// RepairTest is the prompt used to regenerate a test artifact whose failure
// was classified as a defect in the test itself.
const RepairTest = `The following test has a structural or logic issue, not related to code compliance:
{{error}}

Refactor and fix the test to ensure it adheres to best practices and runs successfully. Here's the test file:
{{test_content}}
`
