package inmemorydb_test

import (
	"fmt"
	"github.com/alexandre-normand/triviascot/store/inmemorydb"
	"github.com/alexandre-normand/triviascot/store/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newMockStorer(existingData map[string]string) (ms *mocks.Storer) {
	ms = new(mocks.Storer)
	ms.On("Scan").Return(existingData, nil).Once()

	return ms
}

func TestNewWithErrorLoadingPersistentContent(t *testing.T) {
	ms := new(mocks.Storer)
	ms.On("Scan").Return(nil, fmt.Errorf("error with persistent db"))

	_, err := inmemorydb.New(ms)
	assert.EqualError(t, err, "error with persistent db")
}

func TestGetWithPersistedExistingContent(t *testing.T) {
	ms := newMockStorer(map[string]string{"CHGENERAL": "joined1", "CHRANDOM": "joined2"})

	imdb, err := inmemorydb.New(ms)
	require.NoError(t, err)

	v1, err := imdb.GetString("CHGENERAL")
	assert.NoError(t, err)
	assert.Equal(t, "joined1", v1)

	v2, err := imdb.GetString("CHRANDOM")
	assert.NoError(t, err)
	assert.Equal(t, "joined2", v2)

	// Gets are served from memory only
	ms.AssertNotCalled(t, "GetString", "CHGENERAL")
}

func TestScanReturnsCopy(t *testing.T) {
	ms := newMockStorer(map[string]string{"CHGENERAL": "joined1"})

	imdb, err := inmemorydb.New(ms)
	require.NoError(t, err)

	elements, err := imdb.Scan()
	require.NoError(t, err)
	elements["CHRANDOM"] = "should not be visible"

	elements, err = imdb.Scan()
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"CHGENERAL": "joined1"}, elements)
}

func TestPutWritesThrough(t *testing.T) {
	ms := newMockStorer(map[string]string{"CHGENERAL": "joined1"})
	ms.On("PutString", "CHGENERAL", "joined2").Return(nil)

	imdb, err := inmemorydb.New(ms)
	require.NoError(t, err)

	err = imdb.PutString("CHGENERAL", "joined2")
	require.NoError(t, err)

	v, err := imdb.GetString("CHGENERAL")
	assert.NoError(t, err)
	assert.Equal(t, "joined2", v)
	ms.AssertExpectations(t)
}

func TestDeleteWritesThrough(t *testing.T) {
	ms := newMockStorer(map[string]string{"CHGENERAL": "joined1"})
	ms.On("DeleteString", "CHGENERAL").Return(nil)

	imdb, err := inmemorydb.New(ms)
	require.NoError(t, err)

	err = imdb.DeleteString("CHGENERAL")
	require.NoError(t, err)

	v, err := imdb.GetString("CHGENERAL")
	assert.EqualError(t, err, "CHGENERAL not found")
	assert.Equal(t, "", v)
	ms.AssertExpectations(t)
}

func TestGetOnEmptyStorage(t *testing.T) {
	ms := newMockStorer(nil)

	imdb, err := inmemorydb.New(ms)
	require.NoError(t, err)

	v, err := imdb.GetString("CHGENERAL")
	assert.Equal(t, "", v)
	assert.EqualError(t, err, "CHGENERAL not found")

	entries, err := imdb.Scan()
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestErrorWithPersistentStorageOnPutKeepsMemoryUnchanged(t *testing.T) {
	ms := newMockStorer(map[string]string{})
	ms.On("PutString", "CHGENERAL", "joined").Return(fmt.Errorf("error with persistent db"))

	imdb, err := inmemorydb.New(ms)
	require.NoError(t, err)

	err = imdb.PutString("CHGENERAL", "joined")
	assert.EqualError(t, err, "error with persistent db")

	_, err = imdb.GetString("CHGENERAL")
	assert.Error(t, err)
}

func TestErrorWithPersistentStorageOnDeleteKeepsMemoryUnchanged(t *testing.T) {
	ms := newMockStorer(map[string]string{"CHGENERAL": "joined"})
	ms.On("DeleteString", "CHGENERAL").Return(fmt.Errorf("error with persistent db"))

	imdb, err := inmemorydb.New(ms)
	require.NoError(t, err)

	err = imdb.DeleteString("CHGENERAL")
	assert.EqualError(t, err, "error with persistent db")

	v, err := imdb.GetString("CHGENERAL")
	assert.NoError(t, err)
	assert.Equal(t, "joined", v)
}

func TestCloseClosesPersistentStorage(t *testing.T) {
	ms := newMockStorer(map[string]string{})
	ms.On("Close").Return(fmt.Errorf("error with persistent db"))

	imdb, err := inmemorydb.New(ms)
	require.NoError(t, err)

	err = imdb.Close()
	assert.EqualError(t, err, "error with persistent db")
	ms.AssertExpectations(t)
}
