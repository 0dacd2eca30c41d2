// Package openai implements the ai interfaces over OpenAI-compatible
// APIs (OpenAI itself, Ollama, LocalAI, vLLM, gateways). Summarization
// and embedding degrade to no-ops when their service is unconfigured;
// answer generation errors instead, because its caller cannot proceed
// without it.
package openai
