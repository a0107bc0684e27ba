package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/lateguess/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	cfg := DefaultConfig()
	cfg.Path = filepath.Join(s.T().TempDir(), "test.sqlite")

	store, err := New(cfg, nil)
	s.Require().NoError(err)
	s.ctx = context.Background()
	s.Require().NoError(store.Migrate(s.ctx))

	s.storage = store
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) createUser(username string) *model.User {
	u, err := s.storage.CreateUser(s.ctx, username, "hash-"+username)
	s.Require().NoError(err)
	return u
}

func (s *StorageSuite) createGame(latePerson string) *model.Game {
	g := &model.Game{LatePerson: latePerson, ArrivalTime: "10:00", Created: s.now}
	s.Require().NoError(s.storage.CreateGame(s.ctx, g))
	return g
}

func (s *StorageSuite) createGuess(gameID model.GameID, player *model.User, at string) {
	guess := &model.Guess{GameID: gameID, PlayerID: player.ID, GuessedTime: at, Created: s.now}
	s.Require().NoError(s.storage.CreateGuess(s.ctx, guess))
}

// Migration tests

func (s *StorageSuite) TestMigrateIsIdempotent() {
	s.Require().NoError(s.storage.Migrate(s.ctx))

	version, err := s.storage.SchemaVersion(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), version)
}

func (s *StorageSuite) TestResetClearsData() {
	s.createUser("alice")

	s.Require().NoError(s.storage.Reset(s.ctx))

	_, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// User tests

func (s *StorageSuite) TestCreateAndGetUser() {
	u := s.createUser("alice")
	s.NotZero(u.ID)

	got, err := s.storage.GetUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("alice", got.Username)
	s.Equal("hash-alice", got.PasswordHash)
	s.Equal(0, got.Points)
}

func (s *StorageSuite) TestCreateUserDuplicateUsername() {
	s.createUser("alice")

	_, err := s.storage.CreateUser(s.ctx, "alice", "other")
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *StorageSuite) TestCreateUserDuplicateUsernameIgnoresCase() {
	s.createUser("alice")

	_, err := s.storage.CreateUser(s.ctx, "ALICE", "other")
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *StorageSuite) TestCreateUserOtherConstraintIsNotUsernameTaken() {
	_, err := s.storage.db.ExecContext(s.ctx, `
		CREATE TRIGGER reject_root BEFORE INSERT ON user
		WHEN NEW.username = 'root'
		BEGIN SELECT RAISE(ABORT, 'reserved username'); END`)
	s.Require().NoError(err)

	_, err = s.storage.CreateUser(s.ctx, "root", "hash")

	s.Require().Error(err)
	s.NotErrorIs(err, model.ErrUsernameTaken)
	var pe *model.PersistenceError
	s.ErrorAs(err, &pe)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, 999)
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Post tests

func (s *StorageSuite) TestCreateAndGetPost() {
	author := s.createUser("alice")
	post := &model.Post{Title: "Hello", Body: "World", AuthorID: author.ID, Created: s.now}

	s.Require().NoError(s.storage.CreatePost(s.ctx, post))
	s.NotZero(post.ID)

	got, err := s.storage.GetPost(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Equal("Hello", got.Title)
	s.Equal("World", got.Body)
	s.Equal(author.ID, got.AuthorID)
	s.Equal("alice", got.AuthorUsername)
	s.True(s.now.Equal(got.Created))
}

func (s *StorageSuite) TestListPostsNewestFirst() {
	author := s.createUser("alice")
	for i, title := range []string{"first", "second", "third"} {
		post := &model.Post{Title: title, Body: "b", AuthorID: author.ID, Created: s.now.Add(time.Duration(i) * time.Minute)}
		s.Require().NoError(s.storage.CreatePost(s.ctx, post))
	}

	posts, err := s.storage.ListPosts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(posts, 3)
	s.Equal("third", posts[0].Title)
	s.Equal("first", posts[2].Title)
}

func (s *StorageSuite) TestUpdatePost() {
	author := s.createUser("alice")
	post := &model.Post{Title: "Hello", Body: "World", AuthorID: author.ID, Created: s.now}
	s.Require().NoError(s.storage.CreatePost(s.ctx, post))

	s.Require().NoError(s.storage.UpdatePost(s.ctx, post.ID, "New", "Body"))

	got, err := s.storage.GetPost(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Equal("New", got.Title)
	s.Equal("Body", got.Body)
}

func (s *StorageSuite) TestDeletePost() {
	author := s.createUser("alice")
	post := &model.Post{Title: "Hello", Body: "World", AuthorID: author.ID, Created: s.now}
	s.Require().NoError(s.storage.CreatePost(s.ctx, post))

	s.Require().NoError(s.storage.DeletePost(s.ctx, post.ID))

	_, err := s.storage.GetPost(s.ctx, post.ID)
	s.ErrorIs(err, model.ErrPostNotFound)
	s.ErrorIs(s.storage.DeletePost(s.ctx, post.ID), model.ErrPostNotFound)
}

func (s *StorageSuite) TestCreatePostRequiresExistingAuthor() {
	post := &model.Post{Title: "Hello", Body: "World", AuthorID: 42, Created: s.now}

	err := s.storage.CreatePost(s.ctx, post)

	var pe *model.PersistenceError
	s.ErrorAs(err, &pe)
}

// Game tests

func (s *StorageSuite) TestCreateAndGetGame() {
	g := s.createGame("Bob")

	got, err := s.storage.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal("Bob", got.LatePerson)
	s.Equal("10:00", got.ArrivalTime)
	s.Nil(got.WinnerID)
	s.Nil(got.ResolvedAt)
	s.Equal(model.GameStatusOpen, got.Status())
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, 404)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGamesNewestFirst() {
	s.createGame("Bob")
	s.now = s.now.Add(time.Hour)
	s.createGame("Carol")

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("Carol", games[0].LatePerson)
	s.Equal("Bob", games[1].LatePerson)
}

func (s *StorageSuite) TestListGuessesInSubmissionOrder() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	g := s.createGame("Carol")
	s.createGuess(g.ID, alice, "09:58")
	s.createGuess(g.ID, bob, "10:05")
	s.createGuess(g.ID, alice, "10:30")

	guesses, err := s.storage.ListGuesses(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Require().Len(guesses, 3)
	s.Equal("09:58", guesses[0].GuessedTime)
	s.Equal("alice", guesses[0].PlayerUsername)
	s.Equal("bob", guesses[1].PlayerUsername)
	s.Equal("10:30", guesses[2].GuessedTime)
}

func (s *StorageSuite) TestCreateGuessRequiresExistingGame() {
	alice := s.createUser("alice")
	guess := &model.Guess{GameID: 77, PlayerID: alice.ID, GuessedTime: "10:00", Created: s.now}

	s.Error(s.storage.CreateGuess(s.ctx, guess))
}

// Resolution tests

func pickFirst(guesses []model.Guess) (*model.Guess, time.Duration) {
	if len(guesses) == 0 {
		return nil, 0
	}
	return &guesses[0], time.Minute
}

func (s *StorageSuite) TestResolveGameAwardsPoints() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	g := s.createGame("Carol")
	s.createGuess(g.ID, alice, "09:58")
	s.createGuess(g.ID, bob, "10:05")

	res, err := s.storage.ResolveGame(s.ctx, g.ID, s.now, 1, pickFirst)
	s.Require().NoError(err)
	s.Require().NotNil(res.Winner)
	s.Equal(alice.ID, res.Winner.PlayerID)
	s.Equal("alice", res.Game.WinnerUsername)
	s.Equal(1, res.Points)

	got, err := s.storage.GetUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(1, got.Points)

	other, err := s.storage.GetUser(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.Equal(0, other.Points)

	stored, err := s.storage.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.WinnerID)
	s.Equal(alice.ID, *stored.WinnerID)
	s.Require().NotNil(stored.ResolvedAt)
	s.True(s.now.Equal(*stored.ResolvedAt))
}

func (s *StorageSuite) TestResolveGameWithoutGuessesLeavesGameOpen() {
	g := s.createGame("Carol")

	res, err := s.storage.ResolveGame(s.ctx, g.ID, s.now, 1, pickFirst)
	s.Require().NoError(err)
	s.Nil(res.Winner)

	stored, err := s.storage.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Nil(stored.WinnerID)
}

func (s *StorageSuite) TestResolveGameTwiceDoesNotReaward() {
	alice := s.createUser("alice")
	g := s.createGame("Carol")
	s.createGuess(g.ID, alice, "10:00")

	_, err := s.storage.ResolveGame(s.ctx, g.ID, s.now, 1, pickFirst)
	s.Require().NoError(err)

	res, err := s.storage.ResolveGame(s.ctx, g.ID, s.now, 1, pickFirst)
	s.ErrorIs(err, model.ErrGameResolved)
	s.Require().NotNil(res)
	s.Equal("alice", res.Game.WinnerUsername)

	got, err := s.storage.GetUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(1, got.Points)
}

func (s *StorageSuite) TestResolveGameNotFound() {
	_, err := s.storage.ResolveGame(s.ctx, 12, s.now, 1, pickFirst)
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Leaderboard tests

func (s *StorageSuite) TestListUsersByPoints() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	s.createUser("carol")

	for _, winner := range []*model.User{bob, bob, alice} {
		g := s.createGame("x")
		s.createGuess(g.ID, winner, "10:00")
		_, err := s.storage.ResolveGame(s.ctx, g.ID, s.now, 1, pickFirst)
		s.Require().NoError(err)
	}

	users, err := s.storage.ListUsersByPoints(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	s.Equal("bob", users[0].Username)
	s.Equal(2, users[0].Points)
	s.Equal("alice", users[1].Username)
	s.Equal("carol", users[2].Username)
}
