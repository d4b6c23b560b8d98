package fserr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPathNotSet, "PathNotSet"},
		{KindPermissionDenied, "PermissionDenied"},
		{KindBackupMissing, "BackupMissing"},
		{KindFontMetadataUnreadable, "FontMetadataUnreadable"},
		{KindWriteFailed, "WriteFailed"},
		{Kind(99), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestError_IsMatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("applying font: %w", WriteFailed("/x/fonts.conf", fs.ErrClosed))

	require.ErrorIs(t, err, ErrWriteFailed)
	require.NotErrorIs(t, err, ErrBackupMissing)
	require.ErrorIs(t, err, fs.ErrClosed)
}

func TestPermissionDenied_UserMessageMentionsGame(t *testing.T) {
	err := PermissionDenied("/x/fonts.conf", fs.ErrPermission)

	msg := UserMessage(err)
	require.Contains(t, msg, "game is closed")
	require.Contains(t, msg, "administrator")
	require.ErrorIs(t, err, fs.ErrPermission)
}

func TestPathNotSet_Messages(t *testing.T) {
	require.Contains(t, UserMessage(PathNotSet("")), "not set")
	require.Contains(t, UserMessage(PathNotSet("/nope")), `"/nope" does not exist`)
}

func TestError_ErrorFormatting(t *testing.T) {
	require.Equal(t, "BackupMissing: /s/fonts.conf.old", BackupMissing("/s/fonts.conf.old").Error())
	require.Equal(t, "FontMetadataUnreadable: /f.ttf: boom",
		FontMetadataUnreadable("/f.ttf", errors.New("boom")).Error())
	require.Equal(t, "PathNotSet", (&Error{Kind: KindPathNotSet}).Error())
}

func TestUserMessage_PlainError(t *testing.T) {
	require.Equal(t, "plain", UserMessage(errors.New("plain")))
	require.Equal(t, "", UserMessage(nil))
}
