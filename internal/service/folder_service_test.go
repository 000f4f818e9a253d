package service

import (
	"testing"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/common"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"
)

// 测试内容：根目录与子目录创建，父目录必须真实存在
func TestCreateFolder(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "Alice", "alice@example.com")

	root, err := CreateFolder(user.ID, "Docs", nil)
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if root.ParentFolderID != nil {
		t.Fatal("expected root folder to have nil parent")
	}

	child, err := CreateFolder(user.ID, "Reports", &root.ID)
	if err != nil {
		t.Fatalf("create child folder: %v", err)
	}
	if child.ParentFolderID == nil || *child.ParentFolderID != root.ID {
		t.Fatalf("unexpected parent: %+v", child.ParentFolderID)
	}

	missing := uint(9999)
	_, err = CreateFolder(user.ID, "Orphan", &missing)
	assertServiceError(t, err, common.ErrorCodeNotFound)

	_, err = CreateFolder(user.ID, "", nil)
	assertServiceError(t, err, common.ErrorCodeValidation)
}

// 测试内容：同级目录下不允许同名文件夹，不同层级允许
func TestCreateFolder_SiblingConflict(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "Alice", "alice@example.com")

	root, err := CreateFolder(user.ID, "Docs", nil)
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	_, err = CreateFolder(user.ID, "Docs", nil)
	assertServiceError(t, err, common.ErrorCodeConflict)

	// 同名但在不同父目录下是允许的
	if _, err := CreateFolder(user.ID, "Docs", &root.ID); err != nil {
		t.Fatalf("create same-name folder under different parent: %v", err)
	}

	// 其他用户在自己的根目录下也可以用同一个名字
	bob := createTestUser(t, "Bob", "bob@example.com")
	if _, err := CreateFolder(bob.ID, "Docs", nil); err != nil {
		t.Fatalf("create same-name folder for another user: %v", err)
	}
}

// 测试内容：重命名限所有者，同级重名返回冲突
func TestRenameFolder(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	bob := createTestUser(t, "Bob", "bob@example.com")

	docs, _ := CreateFolder(alice.ID, "Docs", nil)
	if _, err := CreateFolder(alice.ID, "Photos", nil); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	renamed, err := RenameFolder(docs.ID, alice.ID, "Archive")
	if err != nil {
		t.Fatalf("RenameFolder: %v", err)
	}
	if renamed.Name != "Archive" {
		t.Fatalf("expected name Archive, got %q", renamed.Name)
	}

	_, err = RenameFolder(docs.ID, alice.ID, "Photos")
	assertServiceError(t, err, common.ErrorCodeConflict)

	_, err = RenameFolder(docs.ID, bob.ID, "Stolen")
	assertServiceError(t, err, common.ErrorCodeForbidden)

	_, err = RenameFolder(9999, alice.ID, "Ghost")
	assertServiceError(t, err, common.ErrorCodeNotFound)

	_, err = RenameFolder(docs.ID, alice.ID, "")
	assertServiceError(t, err, common.ErrorCodeValidation)
}

// 测试内容：标记删除后不再出现在列表中，行仍保留在数据库
func TestSoftDeleteFolder(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	bob := createTestUser(t, "Bob", "bob@example.com")

	docs, _ := CreateFolder(alice.ID, "Docs", nil)

	err := SoftDeleteFolder(docs.ID, bob.ID)
	assertServiceError(t, err, common.ErrorCodeForbidden)

	if err := SoftDeleteFolder(docs.ID, alice.ID); err != nil {
		t.Fatalf("SoftDeleteFolder: %v", err)
	}

	folders, err := ListFolders(alice.ID)
	if err != nil {
		t.Fatalf("ListFolders: %v", err)
	}
	if len(folders) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(folders))
	}

	var row model.Folder
	if err := db.DB.First(&row, docs.ID).Error; err != nil {
		t.Fatalf("expected row to remain: %v", err)
	}
	if !row.IsDeleted {
		t.Fatal("expected is_deleted flag set")
	}

	// 已删除目录不能再作为父目录
	_, err = CreateFolder(alice.ID, "Child", &docs.ID)
	assertServiceError(t, err, common.ErrorCodeNotFound)

	err = SoftDeleteFolder(9999, alice.ID)
	assertServiceError(t, err, common.ErrorCodeNotFound)
}

// 测试内容：列表只含本人未删除的文件夹，没有时返回空切片
func TestListFolders(t *testing.T) {
	setupTestDB(t)
	alice := createTestUser(t, "Alice", "alice@example.com")
	bob := createTestUser(t, "Bob", "bob@example.com")

	folders, err := ListFolders(alice.ID)
	if err != nil {
		t.Fatalf("ListFolders: %v", err)
	}
	if folders == nil || len(folders) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", folders)
	}

	if _, err := CreateFolder(alice.ID, "Docs", nil); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := CreateFolder(bob.ID, "BobStuff", nil); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	folders, err = ListFolders(alice.ID)
	if err != nil {
		t.Fatalf("ListFolders: %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "Docs" {
		t.Fatalf("unexpected folders: %+v", folders)
	}
}
