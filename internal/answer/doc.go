// Package answer renders query results and failures as Portuguese sentences.
//
// Rendering is deterministic: the same result always yields the same text.
// Numbers use Brazilian grouping (1.234.567) and percentages one decimal
// place with a decimal comma (45,2%). Error details never reach the text;
// failures map to fixed messages.
package answer
