package i18n

var catalogs = map[string]map[string]string{
	LocaleVI: {
		"error.bad_request":            "Yêu cầu không hợp lệ",
		"error.unauthorized":           "Vui lòng đăng nhập",
		"error.requires_login":         "Vui lòng đăng nhập để thêm tour vào giỏ hàng.",
		"error.forbidden":              "Bạn không có quyền thực hiện thao tác này",
		"error.not_found":              "Không tìm thấy dữ liệu",
		"error.internal":               "Hệ thống đang bận, vui lòng thử lại sau",
		"error.auth_header_missing":    "Thiếu thông tin xác thực",
		"error.auth_header_invalid":    "Thông tin xác thực không hợp lệ",
		"error.token_invalid":          "Phiên đăng nhập không hợp lệ",
		"error.token_revoked":          "Phiên đăng nhập đã hết hiệu lực, vui lòng đăng nhập lại",
		"error.jwt_secret_missing":     "Hệ thống chưa cấu hình xác thực",
		"error.user_disabled":          "Tài khoản đã bị khóa",
		"error.user_not_found":         "Không tìm thấy người dùng.",
		"error.email_exists":           "Email đã được đăng ký",
		"error.invalid_credentials":    "Email hoặc mật khẩu không đúng",
		"error.captcha_required":       "Vui lòng nhập mã xác nhận",
		"error.captcha_invalid":        "Mã xác nhận không đúng",
		"error.rate_limit_unavailable": "Không thể kiểm tra tần suất đăng nhập, vui lòng thử lại",
		"error.rate_limited_wait":      "Thao tác quá nhanh, vui lòng thử lại sau %d giây",
		"error.tour_not_found":         "Tour không tồn tại.",
		"error.tour_inactive":          "Tour hiện không mở bán",
		"error.quantity_invalid":       "Số lượng không hợp lệ",
		"error.cart_item_not_found":    "Mục giỏ hàng không tồn tại.",
		"error.cart_empty":             "Giỏ hàng đang trống",
		"error.insufficient_slots":     "Tour không còn đủ chỗ",
		"error.booking_not_found":      "Không tìm thấy đơn đặt tour",
		"error.booking_not_cancelable": "Đơn đặt tour không thể hủy ở trạng thái hiện tại",
		"error.category_not_found":     "Danh mục không tồn tại",
		"error.place_not_found":        "Địa điểm không tồn tại",
		"error.old_password_wrong":     "Mật khẩu cũ không đúng",

		"error.user_id_invalid":             "Thông tin người dùng không hợp lệ",
		"error.user_id_type_invalid":        "Thông tin người dùng không hợp lệ",
		"error.admin_id_invalid":            "Thông tin quản trị viên không hợp lệ",
		"error.admin_id_type_invalid":       "Thông tin quản trị viên không hợp lệ",
		"error.email_invalid":               "Email không hợp lệ",
		"error.password_weak":               "Mật khẩu quá yếu",
		"error.profile_empty":               "Không có thông tin nào để cập nhật",
		"error.register_failed":             "Đăng ký thất bại, vui lòng thử lại",
		"error.login_failed":                "Đăng nhập thất bại, vui lòng thử lại",
		"error.save_failed":                 "Lưu dữ liệu thất bại",
		"error.user_fetch_failed":           "Không thể tải thông tin người dùng",
		"error.user_update_failed":          "Cập nhật người dùng thất bại",
		"error.captcha_unavailable":         "Chức năng mã xác nhận chưa sẵn sàng",
		"error.captcha_generate_failed":     "Không thể tạo mã xác nhận",
		"error.captcha_verify_failed":       "Không thể kiểm tra mã xác nhận",
		"error.cart_fetch_failed":           "Không thể tải giỏ hàng",
		"error.cart_update_failed":          "Cập nhật giỏ hàng thất bại",
		"error.tour_fetch_failed":           "Không thể tải danh sách tour",
		"error.tour_create_failed":          "Tạo tour thất bại",
		"error.tour_update_failed":          "Cập nhật tour thất bại",
		"error.tour_delete_failed":          "Xóa tour thất bại",
		"error.category_fetch_failed":       "Không thể tải danh mục",
		"error.category_create_failed":      "Tạo danh mục thất bại",
		"error.category_update_failed":      "Cập nhật danh mục thất bại",
		"error.category_delete_failed":      "Xóa danh mục thất bại",
		"error.category_in_use":             "Danh mục đang có tour, không thể xóa",
		"error.slug_exists":                 "Slug đã tồn tại",
		"error.slug_used":                   "Slug đã được sử dụng",
		"error.place_fetch_failed":          "Không thể tải danh sách địa điểm",
		"error.place_create_failed":         "Tạo địa điểm thất bại",
		"error.place_update_failed":         "Cập nhật địa điểm thất bại",
		"error.place_delete_failed":         "Xóa địa điểm thất bại",
		"error.checkout_failed":             "Đặt tour thất bại, vui lòng thử lại",
		"error.booking_fetch_failed":        "Không thể tải đơn đặt tour",
		"error.booking_cancel_failed":       "Hủy đơn đặt tour thất bại",
		"error.booking_update_failed":       "Cập nhật đơn đặt tour thất bại",
		"error.booking_status_invalid":      "Trạng thái đơn đặt tour không hợp lệ",
		"error.user_login_log_fetch_failed": "Không thể tải lịch sử đăng nhập",
		"error.config_fetch_failed":         "Không thể tải cấu hình",
		"error.admin_username_invalid":      "Tên đăng nhập không hợp lệ",
		"error.admin_username_exists":       "Tên đăng nhập đã tồn tại",
		"error.admin_create_failed":         "Tạo quản trị viên thất bại",
		"error.admin_update_failed":         "Cập nhật quản trị viên thất bại",
		"error.admin_delete_failed":         "Xóa quản trị viên thất bại",
		"error.admin_delete_self_forbidden": "Không thể tự xóa tài khoản của mình",
		"error.admin_delete_protected":      "Không thể xóa tài khoản quản trị gốc",
		"error.admin_delete_last_forbidden": "Không thể xóa quản trị viên cuối cùng",
		"error.role_protected":              "Không thể xóa vai trò hệ thống",

		"password.too_short":       "Mật khẩu phải có ít nhất %d ký tự",
		"password.require_upper":   "Mật khẩu phải chứa chữ in hoa",
		"password.require_lower":   "Mật khẩu phải chứa chữ thường",
		"password.require_number":  "Mật khẩu phải chứa chữ số",
		"password.require_special": "Mật khẩu phải chứa ký tự đặc biệt",

		"booking.status.pending":   "Chờ xác nhận",
		"booking.status.confirmed": "Đã xác nhận",
		"booking.status.completed": "Đã hoàn thành",
		"booking.status.canceled":  "Đã hủy",

		"email.booking_status.subject":       "Cập nhật đơn đặt tour: %s",
		"email.booking_status.body":          "Đơn đặt tour %s của bạn hiện ở trạng thái: %s. Tổng tiền: %s %s.",
		"email.booking_status.body_canceled": "Đơn đặt tour %s đã bị hủy. Tổng tiền: %s %s. Nếu bạn đã thanh toán, chúng tôi sẽ liên hệ hoàn tiền.",
		"email.booking_status.tip":           "Email được gửi tự động, vui lòng không trả lời.",
	},
	LocaleEN: {
		"error.bad_request":            "Invalid request",
		"error.unauthorized":           "Please sign in",
		"error.requires_login":         "Please sign in to add tours to your cart.",
		"error.forbidden":              "You are not allowed to perform this action",
		"error.not_found":              "Not found",
		"error.internal":               "The system is busy, please try again later",
		"error.auth_header_missing":    "Missing credentials",
		"error.auth_header_invalid":    "Invalid credentials",
		"error.token_invalid":          "Invalid session",
		"error.token_revoked":          "Session expired, please sign in again",
		"error.jwt_secret_missing":     "Authentication is not configured",
		"error.user_disabled":          "This account has been disabled",
		"error.user_not_found":         "User not found.",
		"error.email_exists":           "This email is already registered",
		"error.invalid_credentials":    "Incorrect email or password",
		"error.captcha_required":       "Please enter the captcha",
		"error.captcha_invalid":        "Incorrect captcha",
		"error.rate_limit_unavailable": "Unable to check login rate, please retry",
		"error.rate_limited_wait":      "Too many attempts, please retry in %d seconds",
		"error.tour_not_found":         "Tour does not exist.",
		"error.tour_inactive":          "This tour is not on sale",
		"error.quantity_invalid":       "Invalid quantity",
		"error.cart_item_not_found":    "Cart item does not exist.",
		"error.cart_empty":             "Your cart is empty",
		"error.insufficient_slots":     "Not enough slots left on this tour",
		"error.booking_not_found":      "Booking not found",
		"error.booking_not_cancelable": "This booking cannot be canceled in its current state",
		"error.category_not_found":     "Category does not exist",
		"error.place_not_found":        "Place does not exist",
		"error.old_password_wrong":     "Old password is incorrect",

		"error.user_id_invalid":             "Invalid user identity",
		"error.user_id_type_invalid":        "Invalid user identity",
		"error.admin_id_invalid":            "Invalid admin identity",
		"error.admin_id_type_invalid":       "Invalid admin identity",
		"error.email_invalid":               "Invalid email address",
		"error.password_weak":               "Password is too weak",
		"error.profile_empty":               "Nothing to update",
		"error.register_failed":             "Registration failed, please retry",
		"error.login_failed":                "Sign in failed, please retry",
		"error.save_failed":                 "Failed to save",
		"error.user_fetch_failed":           "Failed to load user",
		"error.user_update_failed":          "Failed to update user",
		"error.captcha_unavailable":         "Captcha is not available",
		"error.captcha_generate_failed":     "Failed to generate captcha",
		"error.captcha_verify_failed":       "Failed to verify captcha",
		"error.cart_fetch_failed":           "Failed to load cart",
		"error.cart_update_failed":          "Failed to update cart",
		"error.tour_fetch_failed":           "Failed to load tours",
		"error.tour_create_failed":          "Failed to create tour",
		"error.tour_update_failed":          "Failed to update tour",
		"error.tour_delete_failed":          "Failed to delete tour",
		"error.category_fetch_failed":       "Failed to load categories",
		"error.category_create_failed":      "Failed to create category",
		"error.category_update_failed":      "Failed to update category",
		"error.category_delete_failed":      "Failed to delete category",
		"error.category_in_use":             "Category still has tours and cannot be deleted",
		"error.slug_exists":                 "Slug already exists",
		"error.slug_used":                   "Slug is already in use",
		"error.place_fetch_failed":          "Failed to load places",
		"error.place_create_failed":         "Failed to create place",
		"error.place_update_failed":         "Failed to update place",
		"error.place_delete_failed":         "Failed to delete place",
		"error.checkout_failed":             "Checkout failed, please retry",
		"error.booking_fetch_failed":        "Failed to load bookings",
		"error.booking_cancel_failed":       "Failed to cancel booking",
		"error.booking_update_failed":       "Failed to update booking",
		"error.booking_status_invalid":      "Invalid booking status",
		"error.user_login_log_fetch_failed": "Failed to load login history",
		"error.config_fetch_failed":         "Failed to load configuration",
		"error.admin_username_invalid":      "Invalid admin username",
		"error.admin_username_exists":       "Admin username already exists",
		"error.admin_create_failed":         "Failed to create admin",
		"error.admin_update_failed":         "Failed to update admin",
		"error.admin_delete_failed":         "Failed to delete admin",
		"error.admin_delete_self_forbidden": "You cannot delete your own account",
		"error.admin_delete_protected":      "The root admin account cannot be deleted",
		"error.admin_delete_last_forbidden": "The last admin cannot be deleted",
		"error.role_protected":              "Builtin roles cannot be deleted",

		"password.too_short":       "Password must be at least %d characters",
		"password.require_upper":   "Password must contain an uppercase letter",
		"password.require_lower":   "Password must contain a lowercase letter",
		"password.require_number":  "Password must contain a digit",
		"password.require_special": "Password must contain a special character",

		"booking.status.pending":   "Pending confirmation",
		"booking.status.confirmed": "Confirmed",
		"booking.status.completed": "Completed",
		"booking.status.canceled":  "Canceled",

		"email.booking_status.subject":       "Booking update: %s",
		"email.booking_status.body":          "Your booking %s is now: %s. Total: %s %s.",
		"email.booking_status.body_canceled": "Booking %s has been canceled. Total: %s %s. If you already paid, we will contact you about a refund.",
		"email.booking_status.tip":           "This email was sent automatically, please do not reply.",
	},
}
