package main

import (
	"net/http"
	"strconv"

	"be04/models"
	"be04/store"

	"github.com/gin-gonic/gin"
)

func setupAdminRoutes(g *gin.RouterGroup) {
	g.GET("/users", listUsersHandler)
	g.GET("/users/:id", getUserHandler)
	g.POST("/users", createUserHandler)
	g.PUT("/users/:id", updateUserHandler)
	g.PATCH("/users/:id/password", updateUserPasswordHandler)
	g.DELETE("/users/:id", deleteUserHandler)

	g.GET("/roles", listRolesHandler)
	g.GET("/roles/:id", getRoleHandler)
	g.POST("/roles", createRoleHandler)
	g.PUT("/roles/:id", updateRoleHandler)
	g.DELETE("/roles/:id", deleteRoleHandler)
	g.GET("/roles/:id/permissions", listRolePermissionsHandler)
	g.POST("/roles/:id/permissions", attachRolePermissionHandler)
	g.DELETE("/roles/:id/permissions/:rpid", detachRolePermissionHandler)

	g.GET("/menus", listMenusHandler)
	g.GET("/menus/:id", getMenuHandler)
	g.POST("/menus", createMenuHandler)
	g.PUT("/menus/:id", updateMenuHandler)
	g.DELETE("/menus/:id", deleteMenuHandler)

	g.GET("/permissions", listPermissionsHandler)
	g.GET("/permissions/:id", getPermissionHandler)
	g.POST("/permissions", createPermissionHandler)
	g.PUT("/permissions/:id", updatePermissionHandler)
	g.DELETE("/permissions/:id", deletePermissionHandler)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	return page, pageSize
}

func listResponse(c *gin.Context, rows any, meta *store.Pagination) {
	c.JSON(http.StatusOK, gin.H{"rows": rows, "pagination": meta})
}

// users

func listUsersHandler(c *gin.Context) {
	page, pageSize := pageParams(c)
	var users []models.User
	meta, err := store.Paginate(db, &models.User{}, &users, page, pageSize,
		store.ILike("email", c.Query("email")),
		store.ILike("name", c.Query("name")),
		store.OrderBy("updated_at desc"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	listResponse(c, users, meta)
}

func getUserHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var user models.User
	if err := db.Preload("Role").First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func createUserHandler(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		RoleID   *uint  `json:"roleId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hashed, err := credHasher.Hash(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := models.User{Name: req.Name, Email: req.Email, Password: hashed, RoleID: req.RoleID, CreatedBy: currentUserID(c)}
	if err := db.Create(&user).Error; err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func updateUserHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name   string `json:"name" binding:"required"`
		Email  string `json:"email" binding:"required,email"`
		RoleID *uint  `json:"roleId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	user.Name = req.Name
	user.Email = req.Email
	user.RoleID = req.RoleID
	user.UpdatedBy = currentUserID(c)
	if err := db.Save(&user).Error; err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func updateUserPasswordHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	hashed, err := credHasher.Hash(req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updates := map[string]any{"password": hashed, "updated_by": currentUserID(c)}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func deleteUserHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tx := db.Delete(&models.User{}, id)
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if tx.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// roles

func listRolesHandler(c *gin.Context) {
	page, pageSize := pageParams(c)
	var roles []models.Role
	meta, err := store.Paginate(db, &models.Role{}, &roles, page, pageSize,
		store.ILike("name", c.Query("name")),
		store.OrderBy("updated_at desc"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	listResponse(c, roles, meta)
}

func getRoleHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var role models.Role
	if err := db.First(&role, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
		return
	}
	c.JSON(http.StatusOK, role)
}

func createRoleHandler(c *gin.Context) {
	var req struct {
		Name         string `json:"name" binding:"required,max=30"`
		IsSuperadmin bool   `json:"isSuperadmin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role := models.Role{Name: req.Name, IsSuperadmin: req.IsSuperadmin, CreatedBy: currentUserID(c)}
	if err := db.Create(&role).Error; err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "role already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, role)
}

func updateRoleHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name         string `json:"name" binding:"required,max=30"`
		IsSuperadmin bool   `json:"isSuperadmin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var role models.Role
	if err := db.First(&role, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
		return
	}
	role.Name = req.Name
	role.IsSuperadmin = req.IsSuperadmin
	role.UpdatedBy = currentUserID(c)
	if err := db.Save(&role).Error; err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "role already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, role)
}

func deleteRoleHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tx := db.Delete(&models.Role{}, id)
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if tx.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role deleted"})
}

func listRolePermissionsHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var links []models.RolePermission
	if err := db.Preload("Permission").Preload("Menu").Where("role_id = ?", id).Order("id").Find(&links).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, links)
}

func attachRolePermissionHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		PermissionID uint `json:"permissionId" binding:"required"`
		MenuID       uint `json:"menuId" binding:"required"`
		IsActive     bool `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var role models.Role
	if err := db.First(&role, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
		return
	}
	link := models.RolePermission{
		RoleID:       role.ID,
		PermissionID: req.PermissionID,
		MenuID:       req.MenuID,
		IsActive:     req.IsActive,
		CreatedBy:    currentUserID(c),
	}
	if err := db.Create(&link).Error; err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "permission already attached"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, link)
}

func detachRolePermissionHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rpid, ok := paramID(c, "rpid")
	if !ok {
		return
	}
	tx := db.Where("role_id = ?", id).Delete(&models.RolePermission{}, rpid)
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if tx.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "link not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "permission detached"})
}

// menus

func listMenusHandler(c *gin.Context) {
	page, pageSize := pageParams(c)
	var menus []models.Menu
	meta, err := store.Paginate(db, &models.Menu{}, &menus, page, pageSize,
		store.ILike("name", c.Query("name")),
		store.OrderBy("updated_at desc"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	listResponse(c, menus, meta)
}

func getMenuHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var menu models.Menu
	if err := db.First(&menu, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
		return
	}
	c.JSON(http.StatusOK, menu)
}

type menuRequest struct {
	ParentID       *uint   `json:"parentId"`
	Name           string  `json:"name" binding:"required,max=50"`
	Icon           string  `json:"icon" binding:"required,max=50"`
	URL            string  `json:"url" binding:"max=50"`
	APIEndpoint    *string `json:"apiEndpoint"`
	APIDescription string  `json:"apiDescription" binding:"max=100"`
	IsActive       bool    `json:"isActive"`
}

func createMenuHandler(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.URL == "" {
		req.URL = "#"
	}
	menu := models.Menu{
		ParentID:       req.ParentID,
		Name:           req.Name,
		Icon:           req.Icon,
		URL:            req.URL,
		APIEndpoint:    req.APIEndpoint,
		APIDescription: req.APIDescription,
		IsActive:       req.IsActive,
		CreatedBy:      currentUserID(c),
	}
	if err := db.Create(&menu).Error; err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "menu already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, menu)
}

func updateMenuHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var menu models.Menu
	if err := db.First(&menu, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
		return
	}
	menu.ParentID = req.ParentID
	menu.Name = req.Name
	menu.Icon = req.Icon
	if req.URL != "" {
		menu.URL = req.URL
	}
	menu.APIEndpoint = req.APIEndpoint
	menu.APIDescription = req.APIDescription
	menu.IsActive = req.IsActive
	menu.UpdatedBy = currentUserID(c)
	if err := db.Save(&menu).Error; err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "menu already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, menu)
}

func deleteMenuHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tx := db.Delete(&models.Menu{}, id)
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if tx.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "menu deleted"})
}

// permissions

func listPermissionsHandler(c *gin.Context) {
	page, pageSize := pageParams(c)
	var perms []models.Permission
	meta, err := store.Paginate(db, &models.Permission{}, &perms, page, pageSize,
		store.ILike("name", c.Query("name")),
		store.ILike("url", c.Query("url")),
		store.OrderBy("updated_at desc"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	listResponse(c, perms, meta)
}

func getPermissionHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var perm models.Permission
	if err := db.First(&perm, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "permission not found"})
		return
	}
	c.JSON(http.StatusOK, perm)
}

type permissionRequest struct {
	Name        string `json:"name" binding:"required,max=10"`
	Description string `json:"description" binding:"max=100"`
	URL         string `json:"url" binding:"required,max=100"`
	Method      string `json:"method" binding:"required,oneof=GET POST PUT PATCH DELETE"`
}

func createPermissionHandler(c *gin.Context) {
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	perm := models.Permission{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Method:      req.Method,
		CreatedBy:   currentUserID(c),
	}
	if err := db.Create(&perm).Error; err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "permission already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, perm)
}

func updatePermissionHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var perm models.Permission
	if err := db.First(&perm, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "permission not found"})
		return
	}
	perm.Name = req.Name
	perm.Description = req.Description
	perm.URL = req.URL
	perm.Method = req.Method
	perm.UpdatedBy = currentUserID(c)
	if err := db.Save(&perm).Error; err != nil {
		if store.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "permission already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, perm)
}

func deletePermissionHandler(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tx := db.Delete(&models.Permission{}, id)
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if tx.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "permission not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "permission deleted"})
}
