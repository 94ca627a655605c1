package services

import (
	"BabyTracker/models"
	"BabyTracker/queue"
	"BabyTracker/repositories/mocks"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type workerFixture struct {
	worker      *NotificationWorker
	notifs      *notificationFixture
	invitations *mocks.InvitationRepository
	mailer      *fakeMailer
	push        *fakePush
}

func newWorkerFixture() *workerFixture {
	f := &workerFixture{
		notifs:      newNotificationFixture(),
		invitations: new(mocks.InvitationRepository),
		mailer:      &fakeMailer{},
		push:        &fakePush{},
	}
	f.worker = NewNotificationWorker(f.notifs.queue, f.notifs.svc, f.invitations, f.mailer, f.push, "https://app.example.com/", discardLogger())
	return f
}

func TestWorkerSendEmail(t *testing.T) {
	f := newWorkerFixture()
	f.notifs.repo.On("FindByID", mock.Anything, uint(7)).
		Return(&models.Notification{ID: 7, UserID: 10, Title: "Fever", Message: "38.4°C recorded"}, nil)
	f.notifs.users.On("FindByID", mock.Anything, uint(10)).
		Return(&models.User{ID: 10, Email: "ana@example.com", FirstName: "Ana", EmailNotifications: true}, nil)

	require.NoError(t, f.worker.Handle(context.Background(), queue.SendEmail(7)))

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, "ana@example.com", msg.To)
	assert.Equal(t, "Fever", msg.Subject)
	assert.Contains(t, msg.Text, "38.4°C recorded")
	assert.Contains(t, msg.Text, "https://app.example.com/notifications")
}

func TestWorkerSendEmail_SkipsOptedOutUser(t *testing.T) {
	f := newWorkerFixture()
	f.notifs.repo.On("FindByID", mock.Anything, uint(7)).Return(&models.Notification{ID: 7, UserID: 10, Message: "hi"}, nil)
	f.notifs.users.On("FindByID", mock.Anything, uint(10)).
		Return(&models.User{ID: 10, Email: "ana@example.com", EmailNotifications: false}, nil)

	require.NoError(t, f.worker.Handle(context.Background(), queue.SendEmail(7)))
	assert.Empty(t, f.mailer.sent)
}

func TestWorkerSendInvitation_ContainsAcceptLink(t *testing.T) {
	f := newWorkerFixture()
	f.invitations.On("FindByID", mock.Anything, uint(4)).Return(&models.Invitation{
		ID:              4,
		Email:           "grandma@example.com",
		Role:            models.RoleCaregiver,
		Token:           "abc123",
		InvitedByUserID: 10,
		ExpiresAt:       testNow.Add(models.InvitationTTL),
		Family:          &models.Family{Name: "The Smiths"},
	}, nil)
	f.notifs.users.On("FindByID", mock.Anything, uint(10)).Return(&models.User{ID: 10, FirstName: "Ana", LastName: "Smith"}, nil)

	require.NoError(t, f.worker.Handle(context.Background(), queue.SendInvitation(4)))

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, "grandma@example.com", msg.To)
	assert.Contains(t, msg.Subject, "The Smiths")
	assert.Contains(t, msg.Text, "https://app.example.com/invitations/abc123")
	assert.Contains(t, msg.HTML, "https://app.example.com/invitations/abc123")
}

func TestWorkerReminder_CreatesNotification(t *testing.T) {
	f := newWorkerFixture()
	f.notifs.repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil)
	f.notifs.users.On("FindByID", mock.Anything, uint(10)).Return(&models.User{ID: 10}, nil)

	require.NoError(t, f.worker.Handle(context.Background(), queue.Reminder(10, ptr(uint(3)), "vitamin D")))

	created := f.notifs.repo.Calls[0].Arguments.Get(1).(*models.Notification)
	assert.Equal(t, models.NotificationReminder, created.Type)
	assert.Equal(t, "vitamin D", created.Message)
	assert.Equal(t, uint(3), *created.ChildID)
	assert.Equal(t, []string{queue.KindSendEmail}, f.notifs.queue.kinds())
}

func TestWorkerSendPush(t *testing.T) {
	f := newWorkerFixture()
	f.notifs.repo.On("FindByID", mock.Anything, uint(7)).Return(&models.Notification{ID: 7, UserID: 10, Title: "t", Message: "m"}, nil)
	f.notifs.users.On("FindByID", mock.Anything, uint(10)).Return(&models.User{ID: 10, DeviceToken: "device-1"}, nil)

	require.NoError(t, f.worker.Handle(context.Background(), queue.SendPush(7)))
	assert.Equal(t, []string{"device-1"}, f.push.tokens)
}

func TestWorkerSendPush_NilSenderIsNoop(t *testing.T) {
	f := newWorkerFixture()
	f.worker.Push = nil

	assert.NoError(t, f.worker.Handle(context.Background(), queue.SendPush(7)))
	f.notifs.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestWorkerUnknownKind(t *testing.T) {
	f := newWorkerFixture()

	assert.EqualError(t, f.worker.Handle(context.Background(), queue.Job{Kind: "fax"}), `unknown job kind "fax"`)
}
