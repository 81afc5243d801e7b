package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lac-hong-legacy/english_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func multipartFile(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func newTestMediaService(ds *PostgresService, store ObjectStore) *MediaService {
	return &MediaService{
		db:         ds,
		content:    ds.Content(),
		contentSvc: newTestContentService(ds, store),
		storage:    store,
	}
}

func TestUploadLessonMedia_ReplacesPrevious(t *testing.T) {
	ds := newTestDatabase(t)
	store := newFakeObjectStore()
	svc := newTestMediaService(ds, store)
	teacher := seedUser(t, ds, "teach", shared.RoleTeacher, shared.TeacherStatusApproved)
	viewer := shared.Viewer{UserID: teacher.ID, Role: teacher.Role}
	lesson := seedLesson(t, ds, seedCourse(t, ds, teacher.ID, true), "vocab", true)

	first, err := svc.UploadLessonMedia(context.Background(), viewer, lesson.ID, multipartFile(t, "Card.PNG", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", first.ContentType)
	assert.True(t, strings.HasPrefix(first.ObjectName, "lessons/"+lesson.ID+"/images/"))
	assert.True(t, strings.HasSuffix(first.ObjectName, ".png"))
	assert.Contains(t, first.URL, first.ObjectName)

	second, err := svc.UploadLessonMedia(context.Background(), viewer, lesson.ID, multipartFile(t, "card2.png", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, []string{first.ObjectName}, store.deleted)

	stored, err := ds.Content().GetLesson(lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ObjectName, stored.MediaObject)
	assert.Equal(t, "image/png", stored.MediaContentType)
}

func TestUploadLessonMedia_Rejections(t *testing.T) {
	ds := newTestDatabase(t)
	store := newFakeObjectStore()
	svc := newTestMediaService(ds, store)
	owner := seedUser(t, ds, "owner", shared.RoleTeacher, shared.TeacherStatusApproved)
	other := seedUser(t, ds, "other", shared.RoleTeacher, shared.TeacherStatusApproved)
	lesson := seedLesson(t, ds, seedCourse(t, ds, owner.ID, true), "vocab", true)

	_, err := svc.UploadLessonMedia(context.Background(), shared.Viewer{UserID: owner.ID, Role: owner.Role}, lesson.ID,
		multipartFile(t, "notes.txt", []byte("just some text")))
	appErr := requireStatus(t, err, 400)
	assert.Contains(t, appErr.Message, "Unsupported media type")

	_, err = svc.UploadLessonMedia(context.Background(), shared.Viewer{UserID: other.ID, Role: other.Role}, lesson.ID,
		multipartFile(t, "card.png", pngHeader))
	requireStatus(t, err, 403)

	assert.Empty(t, store.objects)
}
