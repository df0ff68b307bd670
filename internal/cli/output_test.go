package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airq/internal/chat"
)

func TestOutputFormatter_JSONReply(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Reply(chat.Reply{Text: "ok", Kind: chat.KindAnswer, RequestID: "req-1"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "req-1", resp.RequestID)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "answer", data["kind"])
}

func TestOutputFormatter_JSONErrorReply(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Reply(chat.Reply{Text: "falhou", Kind: chat.KindError, RequestID: "req-2"})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "error", resp.Error.Code)
	assert.Equal(t, "falhou", resp.Error.Message)
	assert.Nil(t, resp.Data)
}

func TestOutputFormatter_TextReply(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Reply(chat.Reply{Text: "Nenhum dado.", Kind: chat.KindNotFound})
	require.NoError(t, err)
	assert.Equal(t, "Nenhum dado.\n", buf.String())
}

func TestOutputFormatter_Table(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Table([]string{"Ano", "Total"}, [][]string{{"2022", "10"}, {"2023", "20"}})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "ANO")
	assert.Contains(t, out, "2023")
	assert.Contains(t, out, "20")
}

func TestOutputFormatter_TableJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Table([]string{"Ano"}, [][]string{{"2023"}}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, []any{[]any{"2023"}}, resp.Data)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "config", errors.New("missing")))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.Equal(t, "outer: config: missing", wrapped.Error())
}
