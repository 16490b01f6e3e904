package i18n

// APIが返すエラー/検証メッセージのキー
const (
	MsgInternal          = "internal_error"
	MsgDBError           = "db_error"
	MsgInvalidBody       = "invalid_body"
	MsgInvalidID         = "invalid_id"
	MsgNotFound          = "not_found"
	MsgUnauthorized      = "unauthorized"
	MsgForbidden         = "admin_only"
	MsgCartEmpty         = "cart_empty"
	MsgInvalidQuantity   = "invalid_quantity"
	MsgInvalidSize       = "invalid_size"
	MsgProductNotFound   = "product_not_found"
	MsgProductUnavail    = "product_unavailable"
	MsgOrderFailed       = "order_failed"
	MsgInvalidStatus     = "invalid_status"
	MsgValidation        = "validation_failed"
	MsgFieldRequired     = "field_required"
	MsgInvalidEmail      = "invalid_email"
	MsgInvalidPhone      = "invalid_phone"
	MsgInvalidPrice      = "invalid_price"
	MsgInvalidStock      = "invalid_stock"
	MsgInvalidCredential = "invalid_credentials"
	MsgUserInactive      = "user_inactive"
	MsgEmailTaken        = "email_taken"
	MsgWeakPassword      = "weak_password"
	MsgUploadFailed      = "upload_failed"
	MsgMailFailed        = "mail_failed"
	MsgFetchFailed       = "fetch_failed"
	MsgSaveFailed        = "save_failed"
	MsgInvalidPriceRange = "invalid_price_range"
	MsgOrderPlaced       = "order_placed"
	MsgSaved             = "saved"
	MsgDeleted           = "deleted"
	MsgMailSent          = "mail_sent"
	MsgQuantityTooLarge  = "quantity_too_large"
)

var catalog = map[string]Text{
	MsgInternal:          {EN: "Something went wrong. Please try again.", AR: "حدث خطأ ما. يرجى المحاولة مرة أخرى."},
	MsgDBError:           {EN: "Something went wrong. Please try again.", AR: "حدث خطأ ما. يرجى المحاولة مرة أخرى."},
	MsgInvalidBody:       {EN: "Invalid request.", AR: "طلب غير صالح."},
	MsgInvalidID:         {EN: "Invalid id.", AR: "معرف غير صالح."},
	MsgNotFound:          {EN: "Not found.", AR: "غير موجود."},
	MsgUnauthorized:      {EN: "Please sign in.", AR: "يرجى تسجيل الدخول."},
	MsgForbidden:         {EN: "Admins only.", AR: "للمسؤولين فقط."},
	MsgCartEmpty:         {EN: "Your cart is empty.", AR: "سلة التسوق فارغة."},
	MsgInvalidQuantity:   {EN: "Quantity must be at least 1.", AR: "يجب أن تكون الكمية 1 على الأقل."},
	MsgInvalidSize:       {EN: "Please select a size.", AR: "يرجى اختيار الحجم."},
	MsgProductNotFound:   {EN: "Product not found.", AR: "المنتج غير موجود."},
	MsgProductUnavail:    {EN: "A product in your cart is no longer available.", AR: "أحد المنتجات في سلتك لم يعد متوفراً."},
	MsgOrderFailed:       {EN: "Failed to place order. Please try again.", AR: "فشل في تقديم الطلب. يرجى المحاولة مرة أخرى."},
	MsgInvalidStatus:     {EN: "Invalid order status.", AR: "حالة الطلب غير صالحة."},
	MsgValidation:        {EN: "Please fix the highlighted fields.", AR: "يرجى تصحيح الحقول المحددة."},
	MsgFieldRequired:     {EN: "This field is required.", AR: "هذا الحقل مطلوب."},
	MsgInvalidEmail:      {EN: "Please enter a valid email address.", AR: "يرجى إدخال بريد إلكتروني صحيح."},
	MsgInvalidPhone:      {EN: "Please enter a valid phone number.", AR: "يرجى إدخال رقم هاتف صحيح."},
	MsgInvalidPrice:      {EN: "Price must be zero or more.", AR: "يجب أن يكون السعر صفراً أو أكثر."},
	MsgInvalidStock:      {EN: "Stock must be zero or more.", AR: "يجب أن يكون المخزون صفراً أو أكثر."},
	MsgInvalidCredential: {EN: "Invalid email or password.", AR: "البريد الإلكتروني أو كلمة المرور غير صحيحة."},
	MsgUserInactive:      {EN: "This account is disabled.", AR: "هذا الحساب معطل."},
	MsgEmailTaken:        {EN: "This email is already registered.", AR: "هذا البريد الإلكتروني مسجل بالفعل."},
	MsgWeakPassword:      {EN: "Password must be at least 8 characters.", AR: "يجب أن تتكون كلمة المرور من 8 أحرف على الأقل."},
	MsgUploadFailed:      {EN: "Failed to upload image.", AR: "فشل في رفع الصورة."},
	MsgMailFailed:        {EN: "Failed to send email.", AR: "فشل في إرسال البريد الإلكتروني."},
	MsgFetchFailed:       {EN: "Failed to load data.", AR: "فشل في تحميل البيانات."},
	MsgSaveFailed:        {EN: "Failed to save.", AR: "فشل في الحفظ."},
	MsgInvalidPriceRange: {EN: "Invalid price range.", AR: "نطاق السعر غير صالح."},
	MsgOrderPlaced:       {EN: "Order placed successfully!", AR: "تم تقديم الطلب بنجاح!"},
	MsgSaved:             {EN: "Saved.", AR: "تم الحفظ."},
	MsgDeleted:           {EN: "Deleted.", AR: "تم الحذف."},
	MsgMailSent:          {EN: "Notification sent.", AR: "تم إرسال الإشعار."},
	MsgQuantityTooLarge:  {EN: "You can add at most 99 of this item.", AR: "يمكنك إضافة 99 قطعة كحد أقصى من هذا المنتج."},
}

// Message はキーに対応する文言を返す。未登録のキーはそのまま返す。
func Message(l Lang, key string) string {
	t, ok := catalog[key]
	if !ok {
		return key
	}
	return ResolveText(t, l)
}

// HasMessage はキーが登録済みかどうか
func HasMessage(key string) bool {
	_, ok := catalog[key]
	return ok
}
