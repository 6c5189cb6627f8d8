package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetInt(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("42\n"))
	var out bytes.Buffer
	got, err := GetInt(in, "Id?", &out)
	if err != nil || got != 42 {
		t.Fatalf("got %d, err=%v", got, err)
	}
}

func TestGetInt_NotANumber(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("forty-two\n"))
	var out bytes.Buffer
	if _, err := GetInt(in, "Id?", &out); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetFloat(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("119999.50\n"))
	var out bytes.Buffer
	got, err := GetFloat(in, "Price?", &out)
	if err != nil || got != 119999.50 {
		t.Fatalf("got %v, err=%v", got, err)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	if _, err := GetPassword(&out); err == nil {
		t.Fatal("expected error")
	}
}
